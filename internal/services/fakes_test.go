package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/pdf"
	"todolist/internal/repositories"
)

type recordLogger struct {
	mu      sync.Mutex
	entries []logger.Entry
}

func (l *recordLogger) add(level logger.Level, msg string, params []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logger.Entry{Level: level, Message: msg, Params: params})
}

func (l *recordLogger) Write(e logger.Entry) { l.add(e.Level, e.Message, e.Params) }

func (l *recordLogger) Debug(msg string, p ...any)   { l.add(logger.LevelDebug, msg, p) }
func (l *recordLogger) Verbose(msg string, p ...any) { l.add(logger.LevelVerbose, msg, p) }
func (l *recordLogger) Log(msg string, p ...any)     { l.add(logger.LevelLog, msg, p) }
func (l *recordLogger) Warn(msg string, p ...any)    { l.add(logger.LevelWarn, msg, p) }
func (l *recordLogger) Error(msg string, p ...any)   { l.add(logger.LevelError, msg, p) }
func (l *recordLogger) Fatal(msg string, p ...any)   { l.add(logger.LevelFatal, msg, p) }

func (l *recordLogger) levels(level logger.Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e.Text())
		}
	}
	return out
}

// fakeTx snapshots the fake tables and restores them when fn fails.
type fakeTx struct {
	users *fakeUserRepo
	otps  *fakeOtpRepo
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx repositories.DBTX) error) error {
	users := f.users.snapshot()
	otps := f.otps.snapshot()
	if err := fn(nil); err != nil {
		f.users.restore(users)
		f.otps.restore(otps)
		return err
	}
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.User
	err    error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{rows: map[int64]models.User{}}
	for _, u := range users {
		r.rows[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) snapshot() map[int64]models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[int64]models.User, len(r.rows))
	for k, v := range r.rows {
		cp[k] = v
	}
	return cp
}

func (r *fakeUserRepo) restore(rows map[int64]models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
}

func (r *fakeUserRepo) WithTx(repositories.DBTX) repositories.UserRepository { return r }

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.rows {
		if existing.Email == u.Email {
			return &pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "users_email_key"`}
		}
	}
	r.nextID++
	u.ID = r.nextID
	if u.Role == "" {
		u.Role = models.RoleCommon
	}
	if u.Status == "" {
		u.Status = models.UserStatusPending
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.rows[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.rows {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[u.ID]; !ok {
		return sql.ErrNoRows
	}
	u.UpdatedAt = time.Now()
	r.rows[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) SetEmailActivation(_ context.Context, id int64, activated bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	u.IsEmailActivated = activated
	u.Status = models.UserStatusActive
	r.rows[id] = u
	return &u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	delete(r.rows, id)
	return &u, nil
}

type fakeOtpRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Otp
}

func (r *fakeOtpRepo) snapshot() []models.Otp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Otp(nil), r.rows...)
}

func (r *fakeOtpRepo) restore(rows []models.Otp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
}

func (r *fakeOtpRepo) WithTx(repositories.DBTX) repositories.OtpRepository { return r }

func (r *fakeOtpRepo) Create(_ context.Context, otp *models.Otp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	otp.ID = r.nextID
	otp.CreatedAt = time.Now()
	r.rows = append(r.rows, *otp)
	return nil
}

func (r *fakeOtpRepo) DeleteByUserAndUseCase(_ context.Context, userID int64, useCase models.OtpUseCase) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	var n int64
	for _, o := range r.rows {
		if o.UserID == userID && o.UseCase == useCase {
			n++
			continue
		}
		kept = append(kept, o)
	}
	r.rows = kept
	return n, nil
}

func (r *fakeOtpRepo) FindLatest(_ context.Context, userID int64, code string) (*models.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if o := r.rows[i]; o.UserID == userID && o.Code == code {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *fakeOtpRepo) Delete(_ context.Context, id, userID int64, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.rows {
		if o.ID == id && o.UserID == userID && o.Code == code {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeOtpRepo) all() []models.Otp {
	return r.snapshot()
}

type sentMail struct {
	UserID int64
	Name   string
	Email  string
	Code   string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMail) SendActivationCodeMail(_ context.Context, userID int64, name, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{UserID: userID, Name: name, Email: email, Code: code})
	return nil
}

type fakeTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.TodoTask
}

func (r *fakeTodoRepo) Create(_ context.Context, t *models.TodoTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Name == t.Name {
			return &pq.Error{Code: "23505"}
		}
	}
	r.nextID++
	t.ID = r.nextID
	if t.Status == "" {
		t.Status = models.TodoTaskPending
	}
	r.rows = append(r.rows, *t)
	return nil
}

func (r *fakeTodoRepo) filter(keep func(models.TodoTask) bool) []models.TodoTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.TodoTask{}
	for _, t := range r.rows {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r *fakeTodoRepo) FindAllByUser(_ context.Context, userID int64) ([]models.TodoTask, error) {
	return r.filter(func(t models.TodoTask) bool { return t.UserID == userID }), nil
}

func (r *fakeTodoRepo) FindAllByUserAndStatus(_ context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error) {
	return r.filter(func(t models.TodoTask) bool { return t.UserID == userID && t.Status == status }), nil
}

func (r *fakeTodoRepo) FindByName(_ context.Context, name string) ([]models.TodoTask, error) {
	return r.filter(func(t models.TodoTask) bool { return t.Name == name }), nil
}

func (r *fakeTodoRepo) FindByIDAndUser(_ context.Context, id, userID int64) (*models.TodoTask, error) {
	found := r.filter(func(t models.TodoTask) bool { return t.ID == id && t.UserID == userID })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *fakeTodoRepo) CountByIDAndUser(_ context.Context, id, userID int64) (int, error) {
	return len(r.filter(func(t models.TodoTask) bool { return t.ID == id && t.UserID == userID })), nil
}

func (r *fakeTodoRepo) Update(_ context.Context, t *models.TodoTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rows {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			r.rows[i] = *t
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeTodoRepo) Delete(_ context.Context, id, userID int64) (*models.TodoTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.rows {
		if t.ID == id && t.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return &t, nil
		}
	}
	return nil, nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	batches [][]models.Log
	err     error
}

func (r *fakeLogRepo) CreateMany(_ context.Context, logs []models.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, append([]models.Log(nil), logs...))
	return nil
}

func (r *fakeLogRepo) rows() []models.Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Log
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

type fakePDF struct {
	got pdf.TaskListData
	err error
}

func (f *fakePDF) GenerateTaskList(data pdf.TaskListData) ([]byte, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("%%PDF %d rows", len(data.Rows))), nil
}

var errBoom = errors.New("boom")
