package plan

import (
	"context"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const planColumns = `id, name, description, price_cents, currency, period_months, image_url, is_active, sort_order, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Plan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE is_active = TRUE ORDER BY sort_order ASC`

	var plans []Plan
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return []Plan{}, nil
	}

	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}

	features, err := r.featuresFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Features = features[plans[i].ID]
		if plans[i].Features == nil {
			plans[i].Features = []Feature{}
		}
	}

	return plans, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`

	var p Plan
	if err := db.Conn(ctx, r.db).GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}

	features, err := r.featuresFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p.Features = features[id]
	if p.Features == nil {
		p.Features = []Feature{}
	}

	return &p, nil
}

func (r *repository) featuresFor(ctx context.Context, planIDs []string) (map[string][]Feature, error) {
	query := `
		SELECT id, plan_id, text, sort_order
		FROM plan_features
		WHERE plan_id = ANY($1)
		ORDER BY sort_order ASC
	`

	var rows []Feature
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &rows, query, pq.Array(planIDs)); err != nil {
		return nil, err
	}

	byPlan := make(map[string][]Feature, len(planIDs))
	for _, f := range rows {
		byPlan[f.PlanID] = append(byPlan[f.PlanID], f)
	}
	return byPlan, nil
}
