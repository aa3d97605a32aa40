package repo

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	GetProfile(ctx context.Context, userID int) (Profile, error)
	UpdateProfile(ctx context.Context, userID int, login, description string) error
	SetAvatarURL(ctx context.Context, userID int, url string) error

	CreateSession(ctx context.Context, userID int, title string) (int, error)
	ListSessions(ctx context.Context, userID int) ([]Session, error)
	AppendMessage(ctx context.Context, sessionID int, role, content, citations string) (int, error)
	GetTranscript(ctx context.Context, sessionID, userID int) ([]Message, error)

	InsertEvents(ctx context.Context, userID int, events []Event) error

	CreateReviewTicket(ctx context.Context, userID int, site, zone string) (int, error)
	GetReviewTicket(ctx context.Context, id int) (ReviewTicket, error)
	UpdateReviewTicketStatus(ctx context.Context, id int, status string) error
	ListReviewTickets(ctx context.Context, userID int) ([]ReviewTicket, error)
}

type Profile struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

type Session struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        int       `json:"id"`
	SessionID int       `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Citations string    `json:"citations,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Event struct {
	Name       string    `json:"name"`
	Payload    string    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReviewTicket struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Site      string    `json:"site"`
	Zone      string    `json:"zone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID int) (Profile, error) {
	var p Profile
	query := "SELECT id, login, email, COALESCE(description, ''), COALESCE(avatar_url, '') FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.Login, &p.Email, &p.Description, &p.AvatarURL)
	return p, err
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID int, login, description string) error {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, userID, login, description)
	return err
}

func (r *PostgresRepository) SetAvatarURL(ctx context.Context, userID int, url string) error {
	query := "UPDATE users SET avatar_url=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, userID, url)
	return err
}

func (r *PostgresRepository) CreateSession(ctx context.Context, userID int, title string) (int, error) {
	var id int
	query := "INSERT INTO chat_sessions (user_id, title, created_at) VALUES ($1, $2, NOW()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, title).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListSessions(ctx context.Context, userID int) ([]Session, error) {
	query := "SELECT id, title, created_at FROM chat_sessions WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *PostgresRepository) AppendMessage(ctx context.Context, sessionID int, role, content, citations string) (int, error) {
	var id int
	query := "INSERT INTO chat_messages (session_id, role, content, citations, created_at) VALUES ($1, $2, $3, $4, NOW()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, sessionID, role, content, citations).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetTranscript(ctx context.Context, sessionID, userID int) ([]Message, error) {
	query := `SELECT m.id, m.session_id, m.role, m.content, COALESCE(m.citations, ''), m.created_at
		FROM chat_messages m JOIN chat_sessions s ON s.id = m.session_id
		WHERE m.session_id=$1 AND s.user_id=$2 ORDER BY m.id`
	rows, err := r.db.QueryContext(ctx, query, sessionID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Citations, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PostgresRepository) InsertEvents(ctx context.Context, userID int, events []Event) error {
	query := "INSERT INTO telemetry_events (user_id, name, payload, occurred_at) VALUES ($1, $2, $3, $4)"
	for _, e := range events {
		if _, err := r.db.ExecContext(ctx, query, userID, e.Name, e.Payload, e.OccurredAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) CreateReviewTicket(ctx context.Context, userID int, site, zone string) (int, error) {
	var id int
	query := "INSERT INTO review_tickets (user_id, site, zone, status, created_at) VALUES ($1, $2, $3, 'pending', NOW()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, site, zone).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetReviewTicket(ctx context.Context, id int) (ReviewTicket, error) {
	var t ReviewTicket
	query := "SELECT id, user_id, site, zone, status, created_at FROM review_tickets WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Site, &t.Zone, &t.Status, &t.CreatedAt)
	return t, err
}

func (r *PostgresRepository) UpdateReviewTicketStatus(ctx context.Context, id int, status string) error {
	query := "UPDATE review_tickets SET status=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *PostgresRepository) ListPendingReviewTickets(ctx context.Context) ([]ReviewTicket, error) {
	query := "SELECT id, user_id, site, zone, status, created_at FROM review_tickets WHERE status='pending' ORDER BY created_at"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []ReviewTicket
	for rows.Next() {
		var t ReviewTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Site, &t.Zone, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PostgresRepository) ListReviewTickets(ctx context.Context, userID int) ([]ReviewTicket, error) {
	query := "SELECT id, user_id, site, zone, status, created_at FROM review_tickets WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []ReviewTicket
	for rows.Next() {
		var t ReviewTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Site, &t.Zone, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
