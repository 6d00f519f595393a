package integration

import (
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/cache"
	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/SharmaTechie/video-stream-platform/internal/db"
	"github.com/SharmaTechie/video-stream-platform/internal/migration"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/repository/mariadb"
	"github.com/SharmaTechie/video-stream-platform/test/testutil"
)

const testChunkSize = 64 * 1024

type testEnv struct {
	DB     *db.Database
	Bucket *testutil.TestBucket
	Store  *chunkstore.Store
}

// newTestEnv migrates a fresh database and creates a fresh chunk bucket.
// A nil cache falls back to the no-op one.
func newTestEnv(t *testing.T, ca port.ObjectCache) *testEnv {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	t.Cleanup(func() { _ = testDB.Cleanup() })

	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	bucket, err := testutil.SetupTestBucket(GlobalMinioClient)
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	t.Cleanup(func() { _ = bucket.Cleanup() })

	if ca == nil {
		ca = cache.NewNoop()
	}
	database := &db.Database{DB: testDB.DB}
	store := chunkstore.New(bucket.Backend, mariadb.NewObjectRepository(database.DB), ca, testChunkSize)

	return &testEnv{DB: database, Bucket: bucket, Store: store}
}
