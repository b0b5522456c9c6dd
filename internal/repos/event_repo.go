package repos

import (
	"farmgate/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EventRepo struct{ db *sqlx.DB }

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db} }

const eventCols = `id,title,description,event_date,start_time,end_time,location,image_url,category,created_at,updated_at`

func (r *EventRepo) List() ([]domain.FarmEvent, error) {
	out := []domain.FarmEvent{}
	err := r.db.Select(&out, `SELECT `+eventCols+` FROM farm_events ORDER BY event_date`)
	return out, err
}

// ListByDateRange returns events with event_date in [from, to], inclusive.
// Dates are RFC3339 date strings so lexicographic range comparison is sound.
func (r *EventRepo) ListByDateRange(from, to string) ([]domain.FarmEvent, error) {
	out := []domain.FarmEvent{}
	err := r.db.Select(&out, `
		SELECT `+eventCols+` FROM farm_events
		WHERE event_date >= ? AND event_date <= ?
		ORDER BY event_date
	`, from, to)
	return out, err
}

func (r *EventRepo) Get(id int64) (domain.FarmEvent, error) {
	var e domain.FarmEvent
	err := r.db.Get(&e, `SELECT `+eventCols+` FROM farm_events WHERE id=?`, id)
	return e, mapErr(err)
}

type InsertEvent struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	EventDate   string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Location    string `json:"location" validate:"required"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category" validate:"required"`
}

func (r *EventRepo) Create(in InsertEvent) (domain.FarmEvent, error) {
	ts := now()
	res, err := r.db.Exec(`
		INSERT INTO farm_events(title,description,event_date,start_time,end_time,location,image_url,category,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`, in.Title, in.Description, in.EventDate, in.StartTime, in.EndTime, in.Location, in.ImageURL, in.Category, ts, ts)
	if err != nil {
		return domain.FarmEvent{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.FarmEvent{}, err
	}
	return r.Get(id)
}

func (r *EventRepo) Update(id int64, in InsertEvent) (domain.FarmEvent, error) {
	res, err := r.db.Exec(`
		UPDATE farm_events
		SET title=?,description=?,event_date=?,start_time=?,end_time=?,location=?,image_url=?,category=?,updated_at=?
		WHERE id=?
	`, in.Title, in.Description, in.EventDate, in.StartTime, in.EndTime, in.Location, in.ImageURL, in.Category, now(), id)
	if err != nil {
		return domain.FarmEvent{}, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.FarmEvent{}, ErrNotFound
	}
	return r.Get(id)
}

func (r *EventRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM farm_events WHERE id=?`, id)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
