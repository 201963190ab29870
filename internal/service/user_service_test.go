package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
	"github.com/edulane/edulane-api/internal/repository"
)

func newUserFixture(t *testing.T, users *fakeUserRepo, students *fakeStudentRepo) (UserService, *fakeNotifier, *fakeAuditRecorder) {
	t.Helper()
	notifier := &fakeNotifier{}
	audit := &fakeAuditRecorder{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewUserService(users, students, notifier, audit, validate, testLogger())
	return svc, notifier, audit
}

func TestRegisterTeacherStartsUnapproved(t *testing.T) {
	users := newFakeUserRepo()
	users.users[7] = models.ApplicationUser{ID: 7, Name: "Dana", Role: models.RoleTeacher, Active: true}
	svc, notifier, _ := newUserFixture(t, users, newFakeStudentRepo())

	response, err := svc.RegisterTeacher(context.Background(), dto.TeacherRegisterRequest{
		UserID:     7,
		Subjects:   "Math, Physics",
		HourlyRate: 40,
	})
	require.NoError(t, err)
	require.False(t, response.Approved)
	require.Equal(t, []string{"Dana"}, notifier.teacherPending)
}

func TestRegisterTeacherRejectsNonTeacherAccount(t *testing.T) {
	users := newFakeUserRepo()
	users.users[7] = models.ApplicationUser{ID: 7, Name: "Pat", Role: models.RoleParent, Active: true}
	svc, _, _ := newUserFixture(t, users, newFakeStudentRepo())

	_, err := svc.RegisterTeacher(context.Background(), dto.TeacherRegisterRequest{UserID: 7})

	var business *BusinessError
	require.ErrorAs(t, err, &business)
	require.Equal(t, "INVALID_STATUS", business.Code)
}

func TestRegisterTeacherRejectsDuplicateProfile(t *testing.T) {
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	users.users[7] = models.ApplicationUser{ID: 7, Name: "Dana", Role: models.RoleTeacher, Active: true}
	svc, _, _ := newUserFixture(t, users, newFakeStudentRepo())

	_, err := svc.RegisterTeacher(context.Background(), dto.TeacherRegisterRequest{UserID: 7})

	var business *BusinessError
	require.ErrorAs(t, err, &business)
}

func TestApproveTeacherFlipsOnceAndAudits(t *testing.T) {
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	svc, _, audit := newUserFixture(t, users, newFakeStudentRepo())

	actor := Actor{ID: 1, Role: models.RoleAdmin}

	response, err := svc.ApproveTeacher(context.Background(), actor, 3)
	require.NoError(t, err)
	require.True(t, response.Approved)
	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditStatusChange, audit.entries[0].Action)
	require.Equal(t, "teacher_profile", audit.entries[0].EntityType)

	// Second approval is a no-op and writes no further audit rows.
	response, err = svc.ApproveTeacher(context.Background(), actor, 3)
	require.NoError(t, err)
	require.True(t, response.Approved)
	require.Len(t, audit.entries, 1)
}

func TestApproveTeacherUnknownProfile(t *testing.T) {
	svc, _, _ := newUserFixture(t, newFakeUserRepo(), newFakeStudentRepo())

	_, err := svc.ApproveTeacher(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 42)
	require.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestListChildrenScopedToParent(t *testing.T) {
	students := newFakeStudentRepo(
		models.Student{ID: 10, ParentUserID: 20, Name: "Mina"},
		models.Student{ID: 11, ParentUserID: 21, Name: "Levi"},
	)
	svc, _, _ := newUserFixture(t, newFakeUserRepo(), students)

	children, err := svc.ListChildren(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "Mina", children[0].Name)
}

type fakeSubscriptionRepo struct {
	rows   map[uint]models.Subscription
	nextID uint
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{rows: make(map[uint]models.Subscription), nextID: 1}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	subscription.ID = f.nextID
	f.nextID++
	f.rows[subscription.ID] = *subscription
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id uint) (models.Subscription, error) {
	row, ok := f.rows[id]
	if !ok {
		return models.Subscription{}, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, subscription *models.Subscription) error {
	f.rows[subscription.ID] = *subscription
	return nil
}

func (f *fakeSubscriptionRepo) List(ctx context.Context, filter repository.SubscriptionFilter) ([]models.Subscription, error) {
	var result []models.Subscription
	for _, row := range f.rows {
		if filter.ParentUserID != nil && row.ParentUserID != *filter.ParentUserID {
			continue
		}
		if filter.StudentID != nil && row.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

func TestSubscriptionCreateValidatesParentLink(t *testing.T) {
	subscriptions := newFakeSubscriptionRepo()
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubscriptionService(subscriptions, students, validate, testLogger())

	end := time.Now().AddDate(0, 1, 0).UTC().Format(time.RFC3339)
	actor := Actor{ID: 1, Role: models.RoleAdmin}

	_, err := svc.Create(context.Background(), actor, dto.SubscriptionCreateRequest{
		ParentUserID: 99, StudentID: 10, Kind: models.SubscriptionOneToOne, PeriodEnd: end,
	})
	var business *BusinessError
	require.ErrorAs(t, err, &business)

	response, err := svc.Create(context.Background(), actor, dto.SubscriptionCreateRequest{
		ParentUserID: 20, StudentID: 10, Kind: models.SubscriptionOneToOne, PeriodEnd: end,
	})
	require.NoError(t, err)
	require.Equal(t, models.ContractStatusActive, response.Status)
	require.True(t, response.HasActiveAccess)
}

func TestSubscriptionListForParent(t *testing.T) {
	subscriptions := newFakeSubscriptionRepo()
	end := time.Now().AddDate(0, 1, 0).UTC()
	subscriptions.rows[1] = models.Subscription{ID: 1, ParentUserID: 20, StudentID: 10, Status: models.ContractStatusActive, PeriodEnd: &end}
	subscriptions.rows[2] = models.Subscription{ID: 2, ParentUserID: 21, StudentID: 11, Status: models.ContractStatusActive, PeriodEnd: &end}
	subscriptions.nextID = 3

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubscriptionService(subscriptions, newFakeStudentRepo(), validate, testLogger())

	responses, err := svc.ListForParent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, uint(1), responses[0].ID)
}
