package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-import-be/internal/entity"
	"ai-import-be/internal/model"
	"ai-import-be/internal/repository/specification"
	"ai-import-be/internal/repository/unitofwork"
	"ai-import-be/pkg/database"
	"ai-import-be/pkg/reconcile"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormImportSessionRepository(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	require.NoError(t, gormDB.AutoMigrate(&model.ImportSession{}))

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()

	practitionerId := "it-" + uuid.New().String()
	patientId := "p-1"
	audit := &entity.ImportSession{
		Id:             uuid.New(),
		SessionId:      uuid.New(),
		PractitionerId: practitionerId,
		PatientId:      &patientId,
		Status:         entity.ImportSessionStatusCommitted,
		ReuseCount:     1,
		CreateCount:    1,
		SetCount:       1,
		Plan: reconcile.CommitPlan{
			PatientID:      patientId,
			ReuseExercises: []reconcile.ExerciseReuse{{TempID: "squat", ExistingExerciseID: "cat-squat"}},
			CreateExercises: []reconcile.ExerciseToCreate{
				{TempID: "walk", Name: "Marsz", Type: reconcile.ExerciseTypeTime},
			},
			Sets:  []reconcile.SetToCreate{{TempID: "set-1", Name: "Rano", ExerciseTempIDs: []string{"squat", "walk"}}},
			Notes: []reconcile.NoteToCreate{},
		},
		CommittedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	t.Cleanup(func() {
		gormDB.Where("practitioner_id = ?", practitionerId).Delete(&model.ImportSession{})
	})

	t.Run("create in transaction", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.ImportSessionRepository().Create(ctx, audit))
		require.NoError(t, uow.Commit())
	})

	t.Run("find by session id", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		got, err := uow.ImportSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: audit.SessionId})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, audit.Id, got.Id)
		assert.Equal(t, "p-1", *got.PatientId)
		assert.Len(t, got.Plan.ReuseExercises, 1)
		assert.Equal(t, []string{"squat", "walk"}, got.Plan.Sets[0].ExerciseTempIDs)
	})

	t.Run("list and count by practitioner", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		all, err := uow.ImportSessionRepository().FindAll(ctx,
			specification.ByPractitionerID{PractitionerID: practitionerId},
			specification.OrderBy{Field: "committed_at", Desc: true},
			specification.Pagination{Limit: 10},
		)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		count, err := uow.ImportSessionRepository().Count(ctx, specification.ByPatientID{PatientID: patientId}, specification.ByPractitionerID{PractitionerID: practitionerId})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rollback discards", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		other := *audit
		other.Id = uuid.New()
		other.SessionId = uuid.New()
		require.NoError(t, uow.ImportSessionRepository().Create(ctx, &other))
		require.NoError(t, uow.Rollback())

		got, err := uowFactory.NewUnitOfWork(ctx).ImportSessionRepository().FindOne(ctx, specification.ByID{ID: other.Id})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
