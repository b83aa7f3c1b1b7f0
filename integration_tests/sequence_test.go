package integration_tests

import (
	"context"
	"log"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/contaflow/ledgerhub/lib/service"
)

type SequenceTestSuite struct {
	suite.Suite
	service *service.LedgerService
	fixture *testCompany
}

func (suite *SequenceTestSuite) SetupSuite() {
	svc, err := LedgerTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	fixture, err := createTestCompany(svc, "Transportes El Dorado", 2024, 3)
	if err != nil {
		log.Fatalf("Error creating test company: %v", err)
	}
	suite.fixture = fixture
}

func (suite *SequenceTestSuite) TestSequentialNumbers() {
	ctx := context.Background()
	first, err := suite.service.NextNumber(ctx, suite.fixture.company.ID, suite.fixture.manualType.ID)
	assert.NoError(suite.T(), err)
	second, err := suite.service.NextNumber(ctx, suite.fixture.company.ID, suite.fixture.manualType.ID)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), first, second)
	assert.Regexp(suite.T(), `^CE\d{6}$`, first)
}

func (suite *SequenceTestSuite) TestConcurrentNumbersAreDistinctAndGapFree() {
	const workers = 20
	ctx := context.Background()

	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := suite.service.NextNumber(ctx, suite.fixture.company.ID, suite.fixture.autoType.ID)
			assert.NoError(suite.T(), err)
			numbers <- number
		}()
	}
	wg.Wait()
	close(numbers)

	values := make([]int, 0, workers)
	for number := range numbers {
		value, err := strconv.Atoi(number[len(number)-6:])
		assert.NoError(suite.T(), err)
		values = append(values, value)
	}
	assert.Len(suite.T(), values, workers)

	// distinct and gap-free: sorted, the numbers form a consecutive range
	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		assert.Equal(suite.T(), values[i-1]+1, values[i],
			"document numbers have a gap or duplicate between %d and %d", values[i-1], values[i])
	}
}

func (suite *SequenceTestSuite) TestScopedToJournalType() {
	ctx := context.Background()
	manual, err := suite.service.NextNumber(ctx, suite.fixture.company.ID, suite.fixture.manualType.ID)
	assert.NoError(suite.T(), err)
	auto, err := suite.service.NextNumber(ctx, suite.fixture.company.ID, suite.fixture.autoType.ID)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), manual[:2], auto[:2])
}

func TestSequenceSuite(t *testing.T) {
	suite.Run(t, new(SequenceTestSuite))
}
