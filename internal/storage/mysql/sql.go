package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, city, price, rating, reviews_count, original_price, amenities, images, raw)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name           = VALUES(name),
  city           = VALUES(city),
  price          = VALUES(price),
  rating         = VALUES(rating),
  reviews_count  = VALUES(reviews_count),
  original_price = VALUES(original_price),
  amenities      = VALUES(amenities),
  images         = VALUES(images),
  raw            = VALUES(raw),
  updated_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const hotelColumns = `
  id,
  name,
  city,
  price,
  rating,
  reviews_count,
  original_price,
  amenities,
  images,
  raw
`

const getHotelSQL = `
SELECT` + hotelColumns + `
FROM hotels
WHERE id = ?
`

// The repository is a fetch-all interface; ordering here is just a stable
// baseline, the derivation engine owns presentation order.
const listHotelsSQL = `
SELECT` + hotelColumns + `
FROM hotels
ORDER BY id
`
