package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/models"
)

type fakeStudentRepo struct {
	students map[uint]models.Student
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[uint]models.Student)}
	for _, student := range students {
		repo.students[student.ID] = student
	}
	return repo
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) ListByParent(ctx context.Context, parentUserID uint) ([]models.Student, error) {
	var result []models.Student
	for _, student := range f.students {
		if student.ParentUserID == parentUserID {
			result = append(result, student)
		}
	}
	return result, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if student.ID == 0 {
		student.ID = uint(len(f.students) + 1)
	}
	f.students[student.ID] = *student
	return nil
}

type fakeNotifier struct {
	teacherPending   []string
	contractsCreated []models.ContractSession
	contractsEnding  []models.ContractSession
	homework         []string
	grades           []string
}

func (f *fakeNotifier) NotifyTeacherPending(ctx context.Context, teacherName string) error {
	f.teacherPending = append(f.teacherPending, teacherName)
	return nil
}

func (f *fakeNotifier) NotifyContractCreated(ctx context.Context, teacherUserID uint, contract models.ContractSession) error {
	f.contractsCreated = append(f.contractsCreated, contract)
	return nil
}

func (f *fakeNotifier) NotifyContractExpiring(ctx context.Context, contract models.ContractSession) error {
	f.contractsEnding = append(f.contractsEnding, contract)
	return nil
}

func (f *fakeNotifier) NotifyHomeworkAssigned(ctx context.Context, parentUserID uint, title string) error {
	f.homework = append(f.homework, title)
	return nil
}

func (f *fakeNotifier) NotifyGradeRecorded(ctx context.Context, parentUserID uint, subject string) error {
	f.grades = append(f.grades, subject)
	return nil
}

func newContractFixture(t *testing.T, contracts *fakeContractRepo, students *fakeStudentRepo) (*contractService, *fakeNotifier, *fakeAuditRecorder) {
	t.Helper()

	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7, HourlyRate: 40})
	notifier := &fakeNotifier{}
	audit := &fakeAuditRecorder{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewContractService(contracts, students, users, notifier, audit, validate, 7, testLogger()).(*contractService)
	return svc, notifier, audit
}

func TestContractCreateSeedsPoolAndNotifiesTeacher(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	contracts := newFakeContractRepo()
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20, Name: "Mina"})
	svc, notifier, _ := newContractFixture(t, contracts, students)
	svc.now = func() time.Time { return now }

	response, err := svc.Create(context.Background(), dto.ContractCreateRequest{
		TeacherProfileID:      3,
		StudentID:             10,
		BillingType:           models.BillingHourly,
		PackageHours:          12,
		SubscriptionPeriodEnd: now.AddDate(0, 2, 0).Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(response.Code, "CT-"))
	require.Len(t, response.Code, 11)
	require.Equal(t, 12, response.RemainingHours)
	require.Equal(t, models.ContractStatusActive, response.Status)
	require.True(t, response.HasActiveAccess)

	require.Len(t, notifier.contractsCreated, 1)
	require.Empty(t, notifier.contractsEnding, "two months out is past the alert window")
}

func TestContractCreateWritesExpiryAlertInsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	contracts := newFakeContractRepo()
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20})
	svc, notifier, _ := newContractFixture(t, contracts, students)
	svc.now = func() time.Time { return now }

	_, err := svc.Create(context.Background(), dto.ContractCreateRequest{
		TeacherProfileID:      3,
		StudentID:             10,
		BillingType:           models.BillingMonthly,
		SubscriptionPeriodEnd: now.AddDate(0, 0, 3).Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Len(t, notifier.contractsEnding, 1)
}

func TestContractCreateRejectsUnknownReferences(t *testing.T) {
	contracts := newFakeContractRepo()
	students := newFakeStudentRepo(models.Student{ID: 10})
	svc, _, _ := newContractFixture(t, contracts, students)

	end := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)

	_, err := svc.Create(context.Background(), dto.ContractCreateRequest{
		TeacherProfileID: 99, StudentID: 10, BillingType: models.BillingHourly, SubscriptionPeriodEnd: end,
	})
	require.ErrorIs(t, err, ErrTeacherNotFound)

	_, err = svc.Create(context.Background(), dto.ContractCreateRequest{
		TeacherProfileID: 3, StudentID: 99, BillingType: models.BillingHourly, SubscriptionPeriodEnd: end,
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestContractCreateValidatesPayload(t *testing.T) {
	svc, _, _ := newContractFixture(t, newFakeContractRepo(), newFakeStudentRepo())

	_, err := svc.Create(context.Background(), dto.ContractCreateRequest{
		TeacherProfileID: 3, StudentID: 10, BillingType: "weekly", SubscriptionPeriodEnd: "not-a-date",
	})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestContractStatusChangeStampsEndDateAndAudits(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	contracts := newFakeContractRepo(activeHourlyContract(5, 4, now))
	svc, _, audit := newContractFixture(t, contracts, newFakeStudentRepo())
	svc.now = func() time.Time { return now }

	actor := Actor{ID: 1, Role: models.RoleAdmin}
	response, err := svc.UpdateStatus(context.Background(), actor, 5, dto.ContractStatusRequest{
		Status: models.ContractStatusCancelled,
		Reason: "family moved away",
	})
	require.NoError(t, err)
	require.Equal(t, models.ContractStatusCancelled, response.Status)
	require.NotNil(t, response.EndDate)
	require.Equal(t, now, *response.EndDate)

	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditStatusChange, audit.entries[0].Action)
	require.Equal(t, "contract_session", audit.entries[0].EntityType)
	require.Equal(t, models.ContractStatusActive, audit.entries[0].Metadata["old_status"])
}

func TestContractRenewReactivatesExpired(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	contract := activeHourlyContract(5, 0, now)
	contract.Status = models.ContractStatusExpired
	contracts := newFakeContractRepo(contract)
	svc, _, _ := newContractFixture(t, contracts, newFakeStudentRepo())
	svc.now = func() time.Time { return now }

	newEnd := now.AddDate(0, 1, 0)
	response, err := svc.Renew(context.Background(), 5, dto.ContractRenewRequest{
		SubscriptionPeriodEnd: newEnd.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, models.ContractStatusActive, response.Status)
	require.NotNil(t, response.SubscriptionPeriodEnd)
	require.True(t, response.SubscriptionPeriodEnd.Equal(newEnd))
}

func TestContractAdjustPoolAudits(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	contracts := newFakeContractRepo(activeHourlyContract(5, 2, now))
	svc, _, audit := newContractFixture(t, contracts, newFakeStudentRepo())

	actor := Actor{ID: 1, Role: models.RoleAdmin}
	response, err := svc.AdjustPool(context.Background(), actor, 5, dto.ContractAdjustHoursRequest{
		RemainingHours: 9,
		Reason:         "package upgrade",
	})
	require.NoError(t, err)
	require.Equal(t, 9, response.RemainingHours)

	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditAdjustPool, audit.entries[0].Action)
	require.Equal(t, 2, audit.entries[0].Metadata["old_remaining_hours"])
	require.Equal(t, 9, audit.entries[0].Metadata["new_remaining_hours"])
}

func TestContractListForParentScopesToOwnStudents(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mine := activeHourlyContract(5, 4, now)
	mine.StudentID = 10
	other := activeHourlyContract(6, 4, now)
	other.StudentID = 11

	contracts := newFakeContractRepo(mine, other)
	students := newFakeStudentRepo(
		models.Student{ID: 10, ParentUserID: 20, Name: "Mina"},
		models.Student{ID: 11, ParentUserID: 21, Name: "Levi"},
	)
	svc, _, _ := newContractFixture(t, contracts, students)

	responses, err := svc.ListForParent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, uint(5), responses[0].ID)
}
