package services

import (
	"os"
	"testing"

	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/emrekaracan/jobboard-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResumeStore(t *testing.T) (*storage.ResumeStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewResumeStore(dir, 5*1024*1024, []string{"pdf", "doc", "docx"})
	require.NoError(t, err)
	return store, dir
}

func newApplicationService(t *testing.T, db *gorm.DB) (*ApplicationService, string) {
	t.Helper()

	store, dir := newResumeStore(t)
	return NewApplicationService(db, store), dir
}

func TestSubmitStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	app, err := svc.Submit(job.ID, alice.ID, "  I would love this role.  ", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "I would love this role.", app.CoverLetter)
	assert.Empty(t, app.ResumePath)
	assert.False(t, app.AppliedAt.IsZero())
}

func TestSubmitRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	bob := createUser(t, db, "bob", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)
	other := createJob(t, db, "Accountant", true, admin.ID)

	_, err := svc.Submit(job.ID, alice.ID, "", nil)
	require.NoError(t, err)

	_, err = svc.Submit(job.ID, alice.ID, "second try", nil)
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	// Same job for another user and another job for the same user both pass.
	_, err = svc.Submit(job.ID, bob.ID, "", nil)
	assert.NoError(t, err)
	_, err = svc.Submit(other.ID, alice.ID, "", nil)
	assert.NoError(t, err)
}

func TestSubmitRejectsInactiveOrMissingJob(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	closed := createJob(t, db, "Backend Engineer", false, admin.ID)

	_, err := svc.Submit(closed.ID, alice.ID, "", nil)
	assert.ErrorIs(t, err, ErrJobInactive)

	_, err = svc.Submit(uuid.New(), alice.ID, "", nil)
	assert.ErrorIs(t, err, ErrJobInactive)
}

func TestSubmitStoresResume(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	resume := makeFileHeader(t, "cv.pdf", 2048)
	app, err := svc.Submit(job.ID, alice.ID, "", resume)
	require.NoError(t, err)
	require.NotEmpty(t, app.ResumePath)

	info, err := os.Stat(app.ResumePath)
	require.NoError(t, err)
	assert.EqualValues(t, 2048, info.Size())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// A duplicate submission with a résumé attached must not leave the new file
// on disk; only the first application's résumé survives.
func TestSubmitCleansUpResumeOnDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	first, err := svc.Submit(job.ID, alice.ID, "", makeFileHeader(t, "cv.pdf", 1024))
	require.NoError(t, err)

	_, err = svc.Submit(job.ID, alice.ID, "", makeFileHeader(t, "cv_v2.pdf", 1024))
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = os.Stat(first.ResumePath)
	assert.NoError(t, err)
}

func TestSubmitRejectsBadUploads(t *testing.T) {
	db := newTestDB(t)
	svc, dir := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	_, err := svc.Submit(job.ID, alice.ID, "", makeFileHeader(t, "malware.exe", 128))
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)

	_, err = svc.Submit(job.ID, alice.ID, "", makeFileHeader(t, "huge.pdf", 6*1024*1024))
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave no files behind")

	// The rejections did not consume the applicant's one slot.
	_, err = svc.Submit(job.ID, alice.ID, "", makeFileHeader(t, "cv.pdf", 1024))
	assert.NoError(t, err)
}

func TestUpdateStatusWritesHistory(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	app, err := svc.Submit(job.ID, alice.ID, "", nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(app.ID, models.StatusInterview, "Tech screen Tuesday")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)

	detail, err := svc.Get(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, detail.Application.Status)
	require.Len(t, detail.History, 1)
	assert.Equal(t, models.StatusInterview, detail.History[0].Status)
	assert.Equal(t, "Tech screen Tuesday", detail.History[0].Notes)

	// Current status always mirrors the newest history row.
	_, err = svc.UpdateStatus(app.ID, models.StatusApproved, "")
	require.NoError(t, err)

	detail, err = svc.Get(app.ID)
	require.NoError(t, err)
	require.Len(t, detail.History, 2)
	assert.Equal(t, detail.Application.Status, detail.History[0].Status)
}

func TestUpdateStatusRejectsUnknownValues(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	job := createJob(t, db, "Backend Engineer", true, admin.ID)

	app, err := svc.Submit(job.ID, alice.ID, "", nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(app.ID, "archived", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(uuid.New(), models.StatusApproved, "")
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	detail, err := svc.Get(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, detail.Application.Status)
	assert.Empty(t, detail.History)
}

func TestListApplicationsFilters(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	bob := createUser(t, db, "bob", models.RoleApplicant)
	backend := createJob(t, db, "Backend Engineer", true, admin.ID)
	frontend := createJob(t, db, "Frontend Engineer", true, admin.ID)

	aliceApp, err := svc.Submit(backend.ID, alice.ID, "", nil)
	require.NoError(t, err)
	_, err = svc.Submit(frontend.ID, bob.ID, "", nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(aliceApp.ID, models.StatusUnderReview, "")
	require.NoError(t, err)

	rows, err := svc.List(ApplicationFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.List(ApplicationFilter{Status: models.StatusUnderReview})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, aliceApp.ID, rows[0].Application.ID)

	rows, err = svc.List(ApplicationFilter{JobID: frontend.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Frontend Engineer", rows[0].JobTitle)

	// Search reaches the applicant email and the job title.
	rows, err = svc.List(ApplicationFilter{Search: "ALICE@example"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, aliceApp.ID, rows[0].Application.ID)

	rows, err = svc.List(ApplicationFilter{Search: "frontend"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, bob.ID, rows[0].Application.UserID)

	rows, err = svc.List(ApplicationFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	bob := createUser(t, db, "bob", models.RoleApplicant)
	backend := createJob(t, db, "Backend Engineer", true, admin.ID)
	frontend := createJob(t, db, "Frontend Engineer", true, admin.ID)

	_, err := svc.Submit(backend.ID, alice.ID, "", nil)
	require.NoError(t, err)
	_, err = svc.Submit(frontend.ID, alice.ID, "", nil)
	require.NoError(t, err)
	_, err = svc.Submit(backend.ID, bob.ID, "", nil)
	require.NoError(t, err)

	rows, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, alice.ID, row.Application.UserID)
		assert.NotEmpty(t, row.JobTitle)
	}
}

func TestWorkflowStats(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newApplicationService(t, db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleApplicant)
	bob := createUser(t, db, "bob", models.RoleApplicant)
	backend := createJob(t, db, "Backend Engineer", true, admin.ID)
	createJob(t, db, "Frontend Engineer", false, admin.ID)

	_, err := svc.Submit(backend.ID, alice.ID, "", nil)
	require.NoError(t, err)
	bobApp, err := svc.Submit(backend.ID, bob.ID, "", nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(bobApp.ID, models.StatusRejected, "")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalJobs)
	assert.EqualValues(t, 1, stats.ActiveJobs)
	assert.EqualValues(t, 2, stats.TotalApplications)
	assert.EqualValues(t, 1, stats.ByStatus[models.StatusPending])
	assert.EqualValues(t, 1, stats.ByStatus[models.StatusRejected])
}
