package repository

import (
	"math"
	"sort"

	"github.com/FawazNazmo/MechLink/entity"

	geo "github.com/kellydunn/golang-geo"
	"gorm.io/gorm"
)

type TokenRepository struct{ DB *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{DB: db} }

func (r *TokenRepository) Create(t *entity.BreakdownToken) error {
	return r.DB.Create(t).Error
}

func (r *TokenRepository) Get(id uint) (*entity.BreakdownToken, error) {
	var t entity.BreakdownToken
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) GetWithUser(id uint) (*entity.BreakdownToken, error) {
	var t entity.BreakdownToken
	if err := r.DB.Preload("User").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// NearbyRow is a token plus its exact distance from the query point.
type NearbyRow struct {
	Token      entity.BreakdownToken
	DistanceKm float64
}

// NearbyOpen returns open tokens within radiusMeters of (lat, lng),
// ascending by distance, capped at limit.
//
// SQLite has no spatial index, so the indexed (status, lat, lng) scan is
// narrowed with a bounding box first and the exact great-circle distance
// is computed per candidate. Open tokens at any instant are few, so the
// box scan stays short.
func (r *TokenRepository) NearbyOpen(lat, lng, radiusMeters float64, limit int) ([]NearbyRow, error) {
	if limit <= 0 {
		limit = 50
	}
	radiusKm := radiusMeters / 1000

	// 1 degree of latitude ~ 111.045 km; longitude shrinks with cos(lat)
	latDelta := radiusKm / 111.045
	lngDelta := latDelta
	if c := math.Cos(lat * math.Pi / 180); c > 0.01 {
		lngDelta = radiusKm / (111.045 * c)
	}

	q := r.DB.Preload("User").
		Where("status = ?", entity.TokenOpen).
		Where("lat BETWEEN ? AND ?", lat-latDelta, lat+latDelta)
	// a box straddling the antimeridian is not a single BETWEEN range;
	// fall back to the lat band alone and let the distance check filter
	if lng-lngDelta >= -180 && lng+lngDelta <= 180 {
		q = q.Where("lng BETWEEN ? AND ?", lng-lngDelta, lng+lngDelta)
	}

	var candidates []entity.BreakdownToken
	err := q.Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	center := geo.NewPoint(lat, lng)
	rows := make([]NearbyRow, 0, len(candidates))
	for _, t := range candidates {
		d := center.GreatCircleDistance(geo.NewPoint(t.Lat, t.Lng))
		if d > radiusKm {
			continue
		}
		rows = append(rows, NearbyRow{Token: t, DistanceKm: d})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].DistanceKm < rows[j].DistanceKm })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ClaimOpen is the accept/reject compare-and-set: one UPDATE guarded on
// status = open. The writer that still observes open wins; everyone else
// sees RowsAffected == 0.
func (r *TokenRepository) ClaimOpen(tx *gorm.DB, tokenID, mechanicID uint, toStatus string) (bool, error) {
	res := tx.Model(&entity.BreakdownToken{}).
		Where("id = ? AND status = ?", tokenID, entity.TokenOpen).
		Updates(map[string]any{"status": toStatus, "mechanic_id": mechanicID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateStatusFromTo advances a token the mechanic already owns.
func (r *TokenRepository) UpdateStatusFromTo(tx *gorm.DB, tokenID uint, from, to string) (bool, error) {
	res := tx.Model(&entity.BreakdownToken{}).
		Where("id = ? AND status = ?", tokenID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TokenRepository) LatestForUser(userID uint) (*entity.BreakdownToken, error) {
	var t entity.BreakdownToken
	err := r.DB.Preload("Mechanic").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) ListForMechanic(mechanicID uint) ([]entity.BreakdownToken, error) {
	var list []entity.BreakdownToken
	err := r.DB.Preload("User").
		Where("mechanic_id = ?", mechanicID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *TokenRepository) ListResolvedForUser(userID uint) ([]entity.BreakdownToken, error) {
	var list []entity.BreakdownToken
	err := r.DB.
		Where("user_id = ? AND status = ? AND mechanic_id IS NOT NULL", userID, entity.TokenResolved).
		Find(&list).Error
	return list, err
}
