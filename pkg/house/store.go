package house

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store is the read-only accessor over the system of record. The indexing
// pipeline never writes through it.
type Store struct {
	db *sql.DB
}

func OpenStore(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open house store: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetHouse(ctx context.Context, id int64) (*House, error) {
	h := &House{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, price, area, direction, rent_way, street, district,
		       city_en_name, region_en_name, create_time, last_update_time
		FROM house WHERE id = $1`, id).Scan(
		&h.Id, &h.Title, &h.Price, &h.Area, &h.Direction, &h.RentWay,
		&h.Street, &h.District, &h.CityEnName, &h.RegionEnName,
		&h.CreateTime, &h.LastUpdateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get house %d: %w", id, err)
	}
	return h, nil
}

func (s *Store) GetDetail(ctx context.Context, houseId int64) (*HouseDetail, error) {
	d := &HouseDetail{}
	err := s.db.QueryRowContext(ctx, `
		SELECT house_id, description, layout_desc, traffic, round_service,
		       detail_address, subway_line_name, subway_station_name, distance_to_subway
		FROM house_detail WHERE house_id = $1`, houseId).Scan(
		&d.HouseId, &d.Description, &d.LayoutDesc, &d.Traffic, &d.RoundService,
		&d.DetailAddress, &d.SubwayLineName, &d.SubwayStationName, &d.DistanceToSubway)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDetailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get house detail %d: %w", houseId, err)
	}
	return d, nil
}

func (s *Store) GetTags(ctx context.Context, houseId int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM house_tag WHERE house_id = $1 ORDER BY name`, houseId)
	if err != nil {
		return nil, fmt.Errorf("get house tags %d: %w", houseId, err)
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// GetHouseIdsByCity lists every house id of a city, used by bulk reindexes.
func (s *Store) GetHouseIdsByCity(ctx context.Context, cityEnName string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM house WHERE city_en_name = $1 ORDER BY id`, cityEnName)
	if err != nil {
		return nil, fmt.Errorf("list house ids for city %q: %w", cityEnName, err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) GetAddress(ctx context.Context, enName string, level AddressLevel) (*SupportAddress, error) {
	a := &SupportAddress{}
	err := s.db.QueryRowContext(ctx, `
		SELECT en_name, cn_name, level, baidu_map_longitude, baidu_map_latitude, COALESCE(belong_to, '')
		FROM support_address WHERE en_name = $1 AND level = $2`, enName, int(level)).Scan(
		&a.EnName, &a.CnName, &a.Level, &a.BaiduMapLng, &a.BaiduMapLat, &a.ParentEnName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("support address %q level %d: %w", enName, level, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get support address %q: %w", enName, err)
	}
	return a, nil
}
