package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/auth"
	employeeerrors "github.com/Shivshady23/employee-payroll-system/internal/employee/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/events"
	"github.com/Shivshady23/employee-payroll-system/internal/messaging/kafka"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/contextutil"
)

const (
	EmployeeOptionsKey = "employees:options"

	dateLayout = "2006-01-02"

	// One retry after a code-uniqueness violation; the counter is atomic, so
	// a second violation means something is genuinely wrong.
	createAttempts = 2
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, principal accesspolicy.Principal, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	List(ctx context.Context, principal accesspolicy.Principal, q ListEmployeesQuery) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context, principal accesspolicy.Principal) ([]EmployeeOption, error)
	Delete(ctx context.Context, principal accesspolicy.Principal, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	users     auth.Repository
	allocator CodeAllocator
	policy    *accesspolicy.Policy
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users auth.Repository,
	allocator CodeAllocator,
	policy *accesspolicy.Policy,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		users:     users,
		allocator: allocator,
		policy:    policy,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) authorize(principal accesspolicy.Principal, action accesspolicy.Action, owner string) error {
	allowed, err := s.policy.Can(principal, action, owner)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	principal accesspolicy.Principal,
	req CreateEmployeeRequest,
) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	if err := s.authorize(principal, accesspolicy.ActionCreateEmployee, ""); err != nil {
		return CreateEmployeeResponse{}, err
	}

	dateOfBirth, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return CreateEmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}
	dateOfJoining, err := time.Parse(dateLayout, req.DateOfJoining)
	if err != nil {
		return CreateEmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	// All validation happens before any write.
	if err := ValidateAge(dateOfBirth, dateOfJoining); err != nil {
		s.logger.Warn("create employee below minimum age",
			zap.String("request_id", rid),
			zap.String("date_of_birth", req.DateOfBirth),
			zap.String("date_of_joining", req.DateOfJoining),
		)
		return CreateEmployeeResponse{}, err
	}

	email := normalizeEmail(req.Email)

	plainPassword, err := auth.GeneratePassword(8)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	hashedPassword, err := auth.HashPassword(plainPassword)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	var created *Employee
	for attempt := 1; attempt <= createAttempts; attempt++ {
		code, err := s.allocator.Allocate(ctx)
		if err != nil {
			s.logger.Error("allocate employee code failed", zap.String("request_id", rid), zap.Error(err))
			return CreateEmployeeResponse{}, mapRepositoryError(err)
		}

		empl := &Employee{
			ID:            uuid.New(),
			Name:          req.Name,
			Email:         email,
			ContactNumber: req.ContactNumber,
			DateOfBirth:   dateOfBirth,
			DateOfJoining: dateOfJoining,
			EmployeeCode:  code,
		}

		err = s.createInTx(ctx, rid, empl, hashedPassword)
		if err == nil {
			created = empl
			break
		}

		// A code collision means the backstop constraint beat the counter;
		// allocate a fresh code and try once more. Everything else is final.
		if err == employeeerrors.ErrEmployeeCodeConflict && attempt < createAttempts {
			s.logger.Warn("employee code collision, retrying",
				zap.String("request_id", rid),
				zap.String("employee_code", code),
			)
			continue
		}

		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", created.ID.String()),
		zap.String("employee_code", created.EmployeeCode),
	)

	return CreateEmployeeResponse{
		Employee: mapToResponse(*created),
		Credentials: OneTimeCredentials{
			Email:    email,
			Password: plainPassword,
		},
	}, nil
}

// createInTx writes the employee, its credential identity and the lifecycle
// event in one transaction, so none of them can exist without the others.
func (s *service) createInTx(ctx context.Context, rid string, empl *Employee, hashedPassword string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		return mapRepositoryError(err)
	}

	employeeID := empl.ID
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       empl.Name,
		Email:      empl.Email,
		Password:   hashedPassword,
		Role:       string(accesspolicy.RoleUser),
		IsActive:   true,
	}
	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		return mapRepositoryError(err)
	}

	event := events.EmployeeCreatedEvent{
		EventType:    "employee_created",
		RequestID:    rid,
		EmployeeID:   empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		Name:         empl.Name,
		Email:        empl.Email,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) List(
	ctx context.Context,
	principal accesspolicy.Principal,
	q ListEmployeesQuery,
) ([]EmployeeResponse, int64, error) {
	if err := s.authorize(principal, accesspolicy.ActionListEmployees, ""); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	offset := (q.Page - 1) * q.Limit

	total, err := s.repo.CountSearch(ctx, q.Search)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	empls, err := s.repo.Search(ctx, q.Search, offset, q.Limit)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(empls), total, nil
}

func (s *service) GetOptions(ctx context.Context, principal accesspolicy.Principal) ([]EmployeeOption, error) {
	if err := s.authorize(principal, accesspolicy.ActionListEmployees, ""); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps a cold cache from stampeding the database when the
	// admin form opens on many screens at once.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{
				ID:           e.ID.String(),
				Name:         e.Name,
				EmployeeCode: e.EmployeeCode,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) Delete(
	ctx context.Context,
	principal accesspolicy.Principal,
	id string,
) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if err := s.authorize(principal, accesspolicy.ActionDeleteEmployee, ""); err != nil {
		return err
	}

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Employee and credential go together: if either removal fails, the
	// rollback prevents an orphaned credential and the failure is reported.
	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.users.WithTx(tx).DeleteByEmployeeID(ctx, id); err != nil {
		s.logger.Error("delete linked credential failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            empl.ID.String(),
		Name:          empl.Name,
		Email:         empl.Email,
		ContactNumber: empl.ContactNumber,
		DateOfBirth:   empl.DateOfBirth.Format(dateLayout),
		DateOfJoining: empl.DateOfJoining.Format(dateLayout),
		EmployeeCode:  empl.EmployeeCode,
		CreatedAt:     empl.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
