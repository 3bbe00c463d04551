package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/services"
)

// --- Mock NumberReader ---
type MockNumberReader struct {
	mock.Mock
}

func (m *MockNumberReader) FindLatestNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type sequenceServiceSuite struct {
	suite.Suite
	mockNumbers *MockNumberReader
	currentYear int
}

func (s *sequenceServiceSuite) SetupTest() {
	s.mockNumbers = new(MockNumberReader)
	s.currentYear = time.Now().UTC().Year()
}

func (s *sequenceServiceSuite) prefixFor(docPrefix string) string {
	return fmt.Sprintf("%s-%d-", docPrefix, s.currentYear)
}

func (s *sequenceServiceSuite) TestNext_FirstNumberOfTheYear() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("INV")).Return("", apperrors.ErrNotFound).Once()

	svc := services.NewSequenceService(s.mockNumbers)
	number, err := svc.Next(ctx, "INV")

	s.Require().NoError(err)
	s.Equal(s.prefixFor("INV")+"0001", number)
	s.mockNumbers.AssertExpectations(s.T())
}

func (s *sequenceServiceSuite) TestNext_IncrementsLatest() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("INV")).Return(s.prefixFor("INV")+"0001", nil).Once()

	svc := services.NewSequenceService(s.mockNumbers)
	number, err := svc.Next(ctx, "INV")

	s.Require().NoError(err)
	s.Equal(s.prefixFor("INV")+"0002", number)
}

func (s *sequenceServiceSuite) TestNext_GrowsPastPadWidth() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("BILL")).Return(s.prefixFor("BILL")+"9999", nil).Once()

	svc := services.NewSequenceService(s.mockNumbers)
	number, err := svc.Next(ctx, "BILL")

	s.Require().NoError(err)
	// The field widens rather than wrapping or truncating.
	s.Equal(s.prefixFor("BILL")+"10000", number)
}

func (s *sequenceServiceSuite) TestNext_StoreErrorFallsBackToTimestamp() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("PO")).Return("", assert.AnError).Once()

	svc := services.NewSequenceService(s.mockNumbers)
	number, err := svc.Next(ctx, "PO")

	// Degraded, not failed: the caller still gets a well-formed number.
	s.Require().NoError(err)
	s.True(strings.HasPrefix(number, s.prefixFor("PO")), "got %s", number)
	suffix := strings.TrimPrefix(number, s.prefixFor("PO"))
	s.Len(suffix, 6)
}

func (s *sequenceServiceSuite) TestNext_MalformedLatestFallsBackToTimestamp() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("SO")).Return("garbage", nil).Once()

	svc := services.NewSequenceService(s.mockNumbers)
	number, err := svc.Next(ctx, "SO")

	s.Require().NoError(err)
	s.True(strings.HasPrefix(number, s.prefixFor("SO")), "got %s", number)
}

func (s *sequenceServiceSuite) TestNext_PrefixesAreIndependent() {
	ctx := context.Background()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("INV")).Return(s.prefixFor("INV")+"0042", nil).Once()
	s.mockNumbers.On("FindLatestNumber", ctx, s.prefixFor("BILL")).Return("", apperrors.ErrNotFound).Once()

	svc := services.NewSequenceService(s.mockNumbers)

	invNumber, err := svc.Next(ctx, "INV")
	s.Require().NoError(err)
	s.Equal(s.prefixFor("INV")+"0043", invNumber)

	billNumber, err := svc.Next(ctx, "BILL")
	s.Require().NoError(err)
	s.Equal(s.prefixFor("BILL")+"0001", billNumber)
}

func TestSequenceServiceSuite(t *testing.T) {
	suite.Run(t, new(sequenceServiceSuite))
}
