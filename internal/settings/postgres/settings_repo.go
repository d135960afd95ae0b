package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oleeahmmed/ecommerce/internal/settings"
)

// SettingsRepo stores one row of store configuration. The single-row rule
// is an upsert on a fixed key, not a coerced primary key in callers.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Load(ctx context.Context) (settings.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT store_name, contact_email, contact_phone, address, currency,
			currency_symbol, maintenance_mode, shipping_policy, return_policy
		FROM store_settings WHERE singleton`)

	var s settings.Settings
	err := row.Scan(&s.StoreName, &s.ContactEmail, &s.ContactPhone, &s.Address,
		&s.Currency, &s.CurrencySymbol, &s.MaintenanceMode, &s.ShippingPolicy, &s.ReturnPolicy)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Settings{}, settings.ErrNotLoaded
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_settings (singleton, store_name, contact_email, contact_phone,
			address, currency, currency_symbol, maintenance_mode, shipping_policy, return_policy)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (singleton) DO UPDATE SET
			store_name = EXCLUDED.store_name,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			address = EXCLUDED.address,
			currency = EXCLUDED.currency,
			currency_symbol = EXCLUDED.currency_symbol,
			maintenance_mode = EXCLUDED.maintenance_mode,
			shipping_policy = EXCLUDED.shipping_policy,
			return_policy = EXCLUDED.return_policy`,
		s.StoreName, s.ContactEmail, s.ContactPhone, s.Address, s.Currency,
		s.CurrencySymbol, s.MaintenanceMode, s.ShippingPolicy, s.ReturnPolicy,
	)
	return err
}
