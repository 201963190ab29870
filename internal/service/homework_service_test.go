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

type fakeHomeworkRepo struct {
	items  map[uint]models.Homework
	nextID uint
}

func newFakeHomeworkRepo() *fakeHomeworkRepo {
	return &fakeHomeworkRepo{items: make(map[uint]models.Homework), nextID: 1}
}

func (f *fakeHomeworkRepo) Create(ctx context.Context, homework *models.Homework) error {
	homework.ID = f.nextID
	f.nextID++
	f.items[homework.ID] = *homework
	return nil
}

func (f *fakeHomeworkRepo) Update(ctx context.Context, homework *models.Homework) error {
	f.items[homework.ID] = *homework
	return nil
}

func (f *fakeHomeworkRepo) GetByID(ctx context.Context, id uint) (models.Homework, error) {
	item, ok := f.items[id]
	if !ok {
		return models.Homework{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeHomeworkRepo) List(ctx context.Context, filter repository.HomeworkFilter) ([]models.Homework, error) {
	var result []models.Homework
	for _, item := range f.items {
		if filter.TeacherProfileID != nil && item.TeacherProfileID != *filter.TeacherProfileID {
			continue
		}
		if len(filter.StudentIDs) > 0 && !containsID(filter.StudentIDs, item.StudentID) {
			continue
		}
		if filter.ContractSessionID != nil {
			if item.ContractSessionID == nil || *item.ContractSessionID != *filter.ContractSessionID {
				continue
			}
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeHomeworkRepo) CountPendingByTeacher(ctx context.Context, teacherProfileID uint) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.TeacherProfileID == teacherProfileID && item.Status == models.HomeworkAssigned {
			count++
		}
	}
	return count, nil
}

func newHomeworkFixture(t *testing.T) (*homeworkService, *fakeHomeworkRepo, *fakeNotifier) {
	t.Helper()

	homework := newFakeHomeworkRepo()
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20, Name: "Mina"})
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	notifier := &fakeNotifier{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewHomeworkService(homework, students, users, notifier, validate, testLogger()).(*homeworkService)
	return svc, homework, notifier
}

func TestHomeworkAssignSanitizesInstructions(t *testing.T) {
	svc, homework, notifier := newHomeworkFixture(t)

	response, err := svc.Assign(context.Background(), 7, dto.HomeworkCreateRequest{
		StudentID:    10,
		Title:        "Fractions worksheet",
		Instructions: `<p>Solve all</p><script>alert("x")</script>`,
		DueDate:      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, "<p>Solve all</p>", response.Instructions)
	require.Equal(t, models.HomeworkAssigned, response.Status)

	require.Len(t, homework.items, 1)
	require.Equal(t, []string{"Fractions worksheet"}, notifier.homework)
}

func TestHomeworkAssignUnknownStudent(t *testing.T) {
	svc, _, _ := newHomeworkFixture(t)

	_, err := svc.Assign(context.Background(), 7, dto.HomeworkCreateRequest{
		StudentID:    99,
		Title:        "Fractions worksheet",
		Instructions: "Solve all",
		DueDate:      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestHomeworkStatusFollowsLifecycle(t *testing.T) {
	svc, homework, _ := newHomeworkFixture(t)

	item := models.Homework{
		TeacherProfileID: 3,
		StudentID:        10,
		Title:            "Essay",
		DueDate:          time.Now().Add(24 * time.Hour).UTC(),
		Status:           models.HomeworkAssigned,
	}
	require.NoError(t, homework.Create(context.Background(), &item))

	// graded straight from assigned is not allowed
	_, err := svc.UpdateStatus(context.Background(), 7, item.ID, dto.HomeworkStatusRequest{Status: models.HomeworkGraded})
	require.ErrorIs(t, err, ErrInvalidStatus)

	submitted, err := svc.UpdateStatus(context.Background(), 7, item.ID, dto.HomeworkStatusRequest{Status: models.HomeworkSubmitted})
	require.NoError(t, err)
	require.Equal(t, models.HomeworkSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	graded, err := svc.UpdateStatus(context.Background(), 7, item.ID, dto.HomeworkStatusRequest{Status: models.HomeworkGraded})
	require.NoError(t, err)
	require.Equal(t, models.HomeworkGraded, graded.Status)
}

func TestHomeworkStatusHidesForeignHomework(t *testing.T) {
	svc, homework, _ := newHomeworkFixture(t)

	item := models.Homework{
		TeacherProfileID: 99,
		StudentID:        10,
		Title:            "Essay",
		DueDate:          time.Now().Add(24 * time.Hour).UTC(),
		Status:           models.HomeworkAssigned,
	}
	require.NoError(t, homework.Create(context.Background(), &item))

	_, err := svc.UpdateStatus(context.Background(), 7, item.ID, dto.HomeworkStatusRequest{Status: models.HomeworkSubmitted})
	require.ErrorIs(t, err, ErrHomeworkNotFound)
}

func TestHomeworkOverdueIsDerivedAtReadTime(t *testing.T) {
	svc, homework, _ := newHomeworkFixture(t)

	item := models.Homework{
		TeacherProfileID: 3,
		StudentID:        10,
		Title:            "Late one",
		DueDate:          time.Now().Add(-24 * time.Hour).UTC(),
		Status:           models.HomeworkAssigned,
	}
	require.NoError(t, homework.Create(context.Background(), &item))

	items, err := svc.ListForTeacher(context.Background(), 7, nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, models.HomeworkOverdue, items[0].Status)

	// Stored row keeps the assigned status.
	stored, err := homework.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, models.HomeworkAssigned, stored.Status)
}

func TestGradeRecordNotifiesParent(t *testing.T) {
	grades := &fakeGradeRepo{}
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20})
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	notifier := &fakeNotifier{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewGradeService(grades, students, users, notifier, validate, testLogger())

	response, err := svc.Record(context.Background(), 7, dto.GradeCreateRequest{
		StudentID: 10,
		Subject:   "Math",
		Score:     87,
		MaxScore:  100,
	})
	require.NoError(t, err)
	require.Equal(t, uint(3), response.TeacherProfileID)
	require.Equal(t, []string{"Math"}, notifier.grades)
}

func TestGradeListForParentScopesToOwnStudents(t *testing.T) {
	grades := &fakeGradeRepo{rows: []models.StudentGrade{
		{ID: 1, TeacherProfileID: 3, StudentID: 10, Subject: "Math"},
		{ID: 2, TeacherProfileID: 3, StudentID: 11, Subject: "History"},
	}}
	students := newFakeStudentRepo(models.Student{ID: 10, ParentUserID: 20})
	users := newFakeUserRepo(models.TeacherProfile{ID: 3, UserID: 7})
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewGradeService(grades, students, users, &fakeNotifier{}, validate, testLogger())

	responses, err := svc.ListForParent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, "Math", responses[0].Subject)
}

type fakeGradeRepo struct {
	rows []models.StudentGrade
}

func (f *fakeGradeRepo) Create(ctx context.Context, grade *models.StudentGrade) error {
	grade.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *grade)
	return nil
}

func (f *fakeGradeRepo) List(ctx context.Context, filter repository.GradeFilter) ([]models.StudentGrade, error) {
	var result []models.StudentGrade
	for _, row := range f.rows {
		if filter.TeacherProfileID != nil && row.TeacherProfileID != *filter.TeacherProfileID {
			continue
		}
		if len(filter.StudentIDs) > 0 && !containsID(filter.StudentIDs, row.StudentID) {
			continue
		}
		if filter.Subject != "" && row.Subject != filter.Subject {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}
