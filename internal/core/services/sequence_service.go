package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

// sequencePadWidth is the minimum digit count of the numeric part. The field
// grows past 9999 instead of truncating.
const sequencePadWidth = 4

// sequenceService generates year-scoped document numbers of the form
// "{prefix}-{year}-{seq}". Uniqueness is enforced by the store's unique
// constraint on the number column; callers retry generation on conflict.
type sequenceService struct {
	numbers portsrepo.NumberReader
}

// NewSequenceService creates the document number generator.
func NewSequenceService(numbers portsrepo.NumberReader) portssvc.SequenceSvc {
	return &sequenceService{numbers: numbers}
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

// Next implements portssvc.SequenceSvc. A store-read failure degrades to a
// timestamp-based number rather than an error; that path is logged as degraded
// behaviour.
func (s *sequenceService) Next(ctx context.Context, prefix string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year := time.Now().UTC().Year()
	numberPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	latest, err := s.numbers.FindLatestNumber(ctx, numberPrefix)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Sprintf("%s%0*d", numberPrefix, sequencePadWidth, 1), nil
		}
		return s.fallbackNumber(logger, numberPrefix, err), nil
	}

	last, err := parseTrailingSequence(latest)
	if err != nil {
		return s.fallbackNumber(logger, numberPrefix, err), nil
	}

	return fmt.Sprintf("%s%0*d", numberPrefix, sequencePadWidth, last+1), nil
}

// fallbackNumber builds a best-effort unique number from the last six digits of
// the current epoch milliseconds. Still well-formed, no longer sequential.
func (s *sequenceService) fallbackNumber(logger *slog.Logger, numberPrefix string, cause error) string {
	suffix := time.Now().UnixMilli() % 1_000_000
	number := fmt.Sprintf("%s%06d", numberPrefix, suffix)
	logger.Warn("Document number generation degraded to timestamp fallback",
		slog.String("number", number),
		slog.String("error", cause.Error()),
	)
	return number
}

// parseTrailingSequence extracts the integer after the final '-' of an
// existing document number.
func parseTrailingSequence(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("malformed document number %q", number)
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed document number %q: %w", number, err)
	}
	return seq, nil
}
