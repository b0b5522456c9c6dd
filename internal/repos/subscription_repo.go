package repos

import (
	"farmgate/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SubscriptionRepo struct{ db *sqlx.DB }

func NewSubscriptionRepo(db *sqlx.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

func (r *SubscriptionRepo) Create(email, phone string) (domain.Subscription, error) {
	res, err := r.db.Exec(`
		INSERT INTO subscriptions(email,phone,active,created_at) VALUES(?,?,1,?)
	`, email, phone, now())
	if err != nil {
		return domain.Subscription{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Subscription{}, err
	}
	return r.get(id)
}

func (r *SubscriptionRepo) get(id int64) (domain.Subscription, error) {
	var s domain.Subscription
	err := r.db.Get(&s, `SELECT id,email,phone,active,created_at FROM subscriptions WHERE id=?`, id)
	return s, mapErr(err)
}

func (r *SubscriptionRepo) ByEmail(email string) (domain.Subscription, error) {
	var s domain.Subscription
	err := r.db.Get(&s, `
		SELECT id,email,phone,active,created_at FROM subscriptions WHERE LOWER(email)=LOWER(?)
	`, email)
	return s, mapErr(err)
}

// ListActive excludes soft-deleted rows.
func (r *SubscriptionRepo) ListActive() ([]domain.Subscription, error) {
	out := []domain.Subscription{}
	err := r.db.Select(&out, `
		SELECT id,email,phone,active,created_at FROM subscriptions
		WHERE active=1 ORDER BY created_at DESC
	`)
	return out, err
}

// Deactivate soft-deletes the subscription; the row is kept.
func (r *SubscriptionRepo) Deactivate(email string) error {
	res, err := r.db.Exec(`UPDATE subscriptions SET active=0 WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reactivate flips a previously unsubscribed email back on, refreshing the
// stored phone when one is supplied.
func (r *SubscriptionRepo) Reactivate(email, phone string) (domain.Subscription, error) {
	if phone != "" {
		if _, err := r.db.Exec(`UPDATE subscriptions SET active=1, phone=? WHERE LOWER(email)=LOWER(?)`, phone, email); err != nil {
			return domain.Subscription{}, mapErr(err)
		}
	} else {
		if _, err := r.db.Exec(`UPDATE subscriptions SET active=1 WHERE LOWER(email)=LOWER(?)`, email); err != nil {
			return domain.Subscription{}, mapErr(err)
		}
	}
	return r.ByEmail(email)
}
