package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateIdentifier = errors.New("duplicate MC/DOT/CDL identifier")
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// ---- staff ----

func (s *Store) GetStaffByEmail(ctx context.Context, email string) (models.Staff, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, password_hash, permissions, calls_made, calls_received, created_at
		FROM staff WHERE email = $1`, email)
	var st models.Staff
	err := row.Scan(&st.ID, &st.TenantID, &st.Name, &st.Email, &st.PasswordHash,
		&st.Permissions, &st.CallsMade, &st.CallsReceived, &st.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Staff{}, ErrNotFound
	}
	return st, err
}

func (s *Store) IncrementCallsMade(ctx context.Context, tenantID, staffID string) error {
	return s.incrementCounter(ctx, "calls_made", tenantID, staffID)
}

func (s *Store) IncrementCallsReceived(ctx context.Context, tenantID, staffID string) error {
	return s.incrementCounter(ctx, "calls_received", tenantID, staffID)
}

func (s *Store) incrementCounter(ctx context.Context, column, tenantID, staffID string) error {
	tag, err := s.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE staff SET %s = %s + 1 WHERE tenant_id = $1 AND id = $2`, column, column),
		tenantID, staffID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetCallMetrics(ctx context.Context, tenantID, staffID string) (made, received int, err error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT calls_made, calls_received FROM staff WHERE tenant_id = $1 AND id = $2`,
		tenantID, staffID)
	err = row.Scan(&made, &received)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrNotFound
	}
	return
}

// ---- files ----

func (s *Store) RegisterFile(ctx context.Context, f models.StoredFile) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO files (id, tenant_id, name, stored_name, size, uploaded_by, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		f.ID, f.TenantID, f.Name, f.StoredName, f.Size, f.UploadedBy, f.UploadedAt)
	return err
}

func (s *Store) GetFile(ctx context.Context, tenantID, fileID string) (models.StoredFile, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, stored_name, size, uploaded_by, uploaded_at
		FROM files WHERE tenant_id = $1 AND id = $2`, tenantID, fileID)
	var f models.StoredFile
	err := row.Scan(&f.ID, &f.TenantID, &f.Name, &f.StoredName, &f.Size, &f.UploadedBy, &f.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.StoredFile{}, ErrNotFound
	}
	return f, err
}

func (s *Store) ListFiles(ctx context.Context, tenantID string) ([]models.StoredFile, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, tenant_id, name, stored_name, size, uploaded_by, uploaded_at
		FROM files WHERE tenant_id = $1 ORDER BY uploaded_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(&f.ID, &f.TenantID, &f.Name, &f.StoredName, &f.Size, &f.UploadedBy, &f.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) RenameFile(ctx context.Context, tenantID, fileID, newName string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE files SET name = $1 WHERE tenant_id = $2 AND id = $3`,
		newName, tenantID, fileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFile removes the registration and returns the stored name so the
// caller can unlink the bytes on disk.
func (s *Store) DeleteFile(ctx context.Context, tenantID, fileID string) (string, error) {
	row := s.Pool.QueryRow(ctx,
		`DELETE FROM files WHERE tenant_id = $1 AND id = $2 RETURNING stored_name`,
		tenantID, fileID)
	var storedName string
	err := row.Scan(&storedName)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return storedName, err
}

// ---- drivers ----

func (s *Store) InsertDriver(ctx context.Context, d models.Driver) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO drivers (id, tenant_id, mc_number, dot_number, cdl_number, status,
			payment_link, has_loader, data, registration_date, last_updated)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		d.ID, d.TenantID, d.Carrier.MCNumber, d.Carrier.DOTNumber, d.Owner.CDLNumber,
		d.Status, d.Loader.PaymentLink, d.HasLoader, data, d.RegistrationDate, d.LastUpdated)
	return mapDuplicate(err)
}

func (s *Store) GetDriver(ctx context.Context, tenantID, driverID string) (models.Driver, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT data FROM drivers WHERE tenant_id = $1 AND id = $2`, tenantID, driverID)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Driver{}, ErrNotFound
		}
		return models.Driver{}, err
	}
	var d models.Driver
	if err := json.Unmarshal(data, &d); err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

func (s *Store) ListDrivers(ctx context.Context, tenantID, status string, limit, offset int) ([]models.Driver, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT data FROM drivers WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY registration_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Driver
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var d models.Driver
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateDriver replaces the stored record, refreshing the denormalized
// identifier columns alongside the document.
func (s *Store) UpdateDriver(ctx context.Context, d models.Driver) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx, `
		UPDATE drivers SET mc_number = $1, dot_number = $2, cdl_number = $3, status = $4,
			payment_link = $5, has_loader = $6, data = $7, last_updated = $8
		WHERE tenant_id = $9 AND id = $10`,
		d.Carrier.MCNumber, d.Carrier.DOTNumber, d.Owner.CDLNumber, d.Status,
		d.Loader.PaymentLink, d.HasLoader, data, d.LastUpdated, d.TenantID, d.ID)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateDriverStatus(ctx context.Context, tenantID, driverID, status, approvedBy string) error {
	now := time.Now().UTC()
	var tag pgconn.CommandTag
	var err error
	if status == models.StatusActive || status == models.StatusApproved {
		tag, err = s.Pool.Exec(ctx, `
			UPDATE drivers SET status = $1, last_updated = $2,
				data = jsonb_set(jsonb_set(jsonb_set(data, '{status}', to_jsonb($1::text)),
					'{approved_by}', to_jsonb($3::text)),
					'{approved_at}', to_jsonb($2::timestamptz))
			WHERE tenant_id = $4 AND id = $5`,
			status, now, approvedBy, tenantID, driverID)
	} else {
		tag, err = s.Pool.Exec(ctx, `
			UPDATE drivers SET status = $1, last_updated = $2,
				data = jsonb_set(data, '{status}', to_jsonb($1::text))
			WHERE tenant_id = $3 AND id = $4`,
			status, now, tenantID, driverID)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDriverPaymentLink overwrites the retained link; at most one active link
// exists per driver.
func (s *Store) SetDriverPaymentLink(ctx context.Context, tenantID, driverID, link string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE drivers SET payment_link = $1,
			data = jsonb_set(data, '{loader,payment_link}', to_jsonb($1::text))
		WHERE tenant_id = $2 AND id = $3`,
		link, tenantID, driverID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDriver removes the record and returns its compliance document URLs
// so uploaded files can be cascaded off disk.
func (s *Store) DeleteDriver(ctx context.Context, tenantID, driverID string) ([]string, error) {
	row := s.Pool.QueryRow(ctx,
		`DELETE FROM drivers WHERE tenant_id = $1 AND id = $2 RETURNING data`,
		tenantID, driverID)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var d models.Driver
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d.Compliance.DocumentURLs, nil
}

// DriverFinancials is the slice of fields the stats endpoint feeds through
// the commission engine.
type DriverFinancials struct {
	Status     string
	Percentage float64
	LoadAmount float64
}

func (s *Store) ListDriverFinancials(ctx context.Context, tenantID string) ([]DriverFinancials, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT status,
			COALESCE((data->'loader'->>'percentage')::float8, 0),
			COALESCE((data->'load_details'->>'amount')::float8, 0)
		FROM drivers WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DriverFinancials
	for rows.Next() {
		var f DriverFinancials
		if err := rows.Scan(&f.Status, &f.Percentage, &f.LoadAmount); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ---- meetings ----

func (s *Store) InsertMeeting(ctx context.Context, m models.Meeting) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO meetings (id, tenant_id, title, with_name, email, scheduled_at, notes, reminder_sent, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.TenantID, m.Title, m.With, m.Email, m.ScheduledAt, m.Notes, m.ReminderSent, m.CreatedBy, m.CreatedAt)
	return err
}

func (s *Store) ListMeetings(ctx context.Context, tenantID string) ([]models.Meeting, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, tenant_id, title, with_name, email, scheduled_at, notes, reminder_sent, created_by, created_at
		FROM meetings WHERE tenant_id = $1 ORDER BY scheduled_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Title, &m.With, &m.Email, &m.ScheduledAt,
			&m.Notes, &m.ReminderSent, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteMeeting(ctx context.Context, tenantID, meetingID string) error {
	tag, err := s.Pool.Exec(ctx,
		`DELETE FROM meetings WHERE tenant_id = $1 AND id = $2`, tenantID, meetingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDueReminders returns unsent meetings starting within the horizon,
// across all tenants.
func (s *Store) ListDueReminders(ctx context.Context, horizon time.Duration) ([]models.Meeting, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, tenant_id, title, with_name, email, scheduled_at, notes, reminder_sent, created_by, created_at
		FROM meetings
		WHERE reminder_sent = FALSE AND scheduled_at > NOW() AND scheduled_at <= NOW() + $1::interval
		ORDER BY scheduled_at ASC`,
		fmt.Sprintf("%d seconds", int(horizon.Seconds())))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Title, &m.With, &m.Email, &m.ScheduledAt,
			&m.Notes, &m.ReminderSent, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkReminderSent flips the flag and reports whether this call won the
// check-and-set, so each meeting gets exactly one reminder.
func (s *Store) MarkReminderSent(ctx context.Context, meetingID string) (bool, error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE meetings SET reminder_sent = TRUE WHERE id = $1 AND reminder_sent = FALSE`,
		meetingID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func mapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.HasPrefix(pgErr.ConstraintName, "drivers_tenant_") {
		return fmt.Errorf("%w (%s)", ErrDuplicateIdentifier, strings.TrimPrefix(pgErr.ConstraintName, "drivers_tenant_"))
	}
	return err
}
