package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/testutil"
)

// createDriver connects to the server in DEPTLIB_MONGO_URI, the tests are
// skipped when it is not set.
func createDriver(t *testing.T) (*Driver, func()) {
	uri := os.Getenv("DEPTLIB_MONGO_URI")
	if uri == "" {
		t.Skip("DEPTLIB_MONGO_URI not set")
	}

	driver := &Driver{}
	database := fmt.Sprintf("deptlib_test_%d", time.Now().UnixNano())
	require.NoError(t, driver.Open(uri, database))

	return driver, func() {
		driver.Drop()
		driver.Close()
	}
}

func TestWorkRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestWorkRepository(t, &WorkRepository{Driver: driver})
}

func TestAuthorRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestAuthorRepository(t, &AuthorRepository{Driver: driver})
}

func TestCategoryRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestCategoryRepository(t, &CategoryRepository{Driver: driver})
}

func TestJournalRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestJournalRepository(t, &JournalRepository{Driver: driver})
}

func TestUserRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	testutil.TestUserRepository(t, &UserRepository{Driver: driver})
}

func TestCollectionNames(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	require.NoError(t, (&WorkRepository{Driver: driver}).Upsert(&deptlib.Work{Title: "w"}))
	require.NoError(t, (&AuthorRepository{Driver: driver}).Upsert(&deptlib.Author{Name: "a"}))
	require.NoError(t, (&CategoryRepository{Driver: driver}).Upsert(&deptlib.Category{Title: "c"}))
	require.NoError(t, (&JournalRepository{Driver: driver}).Upsert(&deptlib.Journal{Title: "j"}))
	require.NoError(t, (&UserRepository{Driver: driver}).Upsert(&deptlib.User{Email: "u@lib.dept"}))

	names, err := driver.db.ListCollectionNames(context.Background(), bson.D{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"works", "authors", "categories", "journals", "users", "counters"}, names)
}
