package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/model"
)

const propertyColumns = `id, owner_id, title, COALESCE(description, '') AS description,
	thumbnail_photo_url, cover_photo_url, cost_per_night, street, city, province,
	post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms`

// PropertyRepository searches and creates rows of the properties table.
type PropertyRepository struct {
	baseRepository
}

func NewPropertyRepository(db DBTX, log *zerolog.Logger) *PropertyRepository {
	return &PropertyRepository{baseRepository: newBaseRepository(db, log)}
}

// SearchProperties returns properties matching every filter present in
// opts together with their average rating, cheapest first, at most limit
// entries. A non-positive limit means model.DefaultLimit.
//
// Reviews are inner-joined: a property without reviews never matches.
func (r *PropertyRepository) SearchProperties(ctx context.Context, opts model.SearchOptions, limit int) ([]model.PropertyWithRating, error) {
	query, args := buildSearchQuery(opts, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.fail(ctx, err, "search_properties")
	}

	properties, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PropertyWithRating])
	if err != nil {
		return nil, r.fail(ctx, err, "search_properties")
	}

	return properties, nil
}

// AddProperty converts the nightly cost to minor units, inserts the
// property and returns the stored row including its generated id.
func (r *PropertyRepository) AddProperty(ctx context.Context, property model.NewProperty) (*model.Property, error) {
	rows, err := r.db.Query(ctx, `
	INSERT INTO properties (
		owner_id, title, description, thumbnail_photo_url, cover_photo_url,
		cost_per_night, street, city, province, post_code, country,
		parking_spaces, number_of_bathrooms, number_of_bedrooms
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING `+propertyColumns,
		property.OwnerID,
		property.Title,
		property.Description,
		property.ThumbnailPhotoURL,
		property.CoverPhotoURL,
		model.ToMinorUnits(property.CostPerNight),
		property.Street,
		property.City,
		property.Province,
		property.PostCode,
		property.Country,
		property.ParkingSpaces,
		property.NumberOfBathrooms,
		property.NumberOfBedrooms,
	)
	if err != nil {
		return nil, r.fail(ctx, err, "add_property")
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Property])
	if err != nil {
		return nil, r.fail(ctx, err, "add_property")
	}

	return created, nil
}

// searchQuery accumulates WHERE/HAVING clauses and numbers placeholders
// in the order their arguments are appended.
type searchQuery struct {
	where  []string
	having []string
	args   []any
}

func (q *searchQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// buildSearchQuery renders the search statement for opts. Row filters go
// to WHERE, the rating filter to HAVING, and the limit is always the
// last argument.
func buildSearchQuery(opts model.SearchOptions, limit int) (string, []any) {
	q := &searchQuery{}

	if opts.City != nil && *opts.City != "" {
		q.where = append(q.where, "properties.city LIKE "+q.arg("%"+*opts.City+"%"))
	}
	if opts.OwnerID != nil {
		q.where = append(q.where, "properties.owner_id = "+q.arg(*opts.OwnerID))
	}
	if opts.MinimumPricePerNight != nil {
		q.where = append(q.where, "properties.cost_per_night >= "+q.arg(model.MinimumMinorUnits(*opts.MinimumPricePerNight)))
	}
	if opts.MaximumPricePerNight != nil {
		q.where = append(q.where, "properties.cost_per_night <= "+q.arg(model.MaximumMinorUnits(*opts.MaximumPricePerNight)))
	}
	if opts.MinimumRating != nil {
		q.having = append(q.having, "AVG(property_reviews.rating) >= "+q.arg(*opts.MinimumRating))
	}

	var b strings.Builder
	b.WriteString(`
	SELECT
		properties.id, properties.owner_id, properties.title,
		COALESCE(properties.description, '') AS description,
		properties.thumbnail_photo_url, properties.cover_photo_url,
		properties.cost_per_night, properties.street, properties.city,
		properties.province, properties.post_code, properties.country,
		properties.parking_spaces, properties.number_of_bathrooms,
		properties.number_of_bedrooms,
		AVG(property_reviews.rating)::float8 AS average_rating
	FROM properties
	JOIN property_reviews ON property_reviews.property_id = properties.id`)

	if len(q.where) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(q.where, "\n\t\tAND "))
	}

	b.WriteString("\n\tGROUP BY properties.id")

	if len(q.having) > 0 {
		b.WriteString("\n\tHAVING ")
		b.WriteString(strings.Join(q.having, " AND "))
	}

	b.WriteString("\n\tORDER BY properties.cost_per_night")
	b.WriteString("\n\tLIMIT " + q.arg(model.NormalizeLimit(limit)))

	return b.String(), q.args
}
