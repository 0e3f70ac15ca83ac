package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers and dates for deterministic tests.
var (
	TestUserID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestProductID = int64(1)

	// TestStartDate is a Monday well clear of month-end edge cases.
	TestStartDate = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
)
