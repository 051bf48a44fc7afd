package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"hotelbook/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	imgs, _ := json.Marshal(h.Images)
	raw := h.RawJSON
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.City,
		h.Price,
		valF64(h.Rating),
		valInt(h.ReviewsCount),
		valF64(h.OriginalPrice),
		string(amen),
		string(imgs),
		string(raw),
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)
	h, err := scanHotel(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanHotel(scan func(dest ...any) error) (domain.Hotel, error) {
	var h domain.Hotel
	var (
		name, city               sql.NullString
		price                    sql.NullFloat64
		rating, originalPrice    sql.NullFloat64
		reviews                  sql.NullInt64
		amenitiesJSON, imagesRaw []byte
		raw                      []byte
	)
	if err := scan(
		&h.ID,
		&name,
		&city,
		&price,
		&rating,
		&reviews,
		&originalPrice,
		&amenitiesJSON,
		&imagesRaw,
		&raw,
	); err != nil {
		return domain.Hotel{}, err
	}

	h.Name = name.String
	h.City = city.String
	h.Price = price.Float64
	if rating.Valid {
		f := rating.Float64
		h.Rating = &f
	}
	if reviews.Valid {
		n := int(reviews.Int64)
		h.ReviewsCount = &n
	}
	if originalPrice.Valid {
		f := originalPrice.Float64
		h.OriginalPrice = &f
	}
	_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
	_ = json.Unmarshal(imagesRaw, &h.Images)
	if len(raw) > 0 {
		h.RawJSON = append([]byte(nil), raw...)
	}
	return h, nil
}
