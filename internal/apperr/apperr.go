// Package apperr holds the sentinel errors shared by services and
// controllers. Controllers match them with errors.Is to pick a status code;
// anything not in this list is treated as an internal persistence failure
// and never serialized to clients.
package apperr

import "errors"

var (
	// ErrTestNotFound means the referenced test id does not exist.
	ErrTestNotFound = errors.New("test not found")

	// ErrNoTestsAvailable means there is no test to assign to a taker.
	ErrNoTestsAvailable = errors.New("no tests available")

	// ErrQuestionNotInTest rejects a submission containing an answer whose
	// question belongs to a different test (or to no test at all).
	ErrQuestionNotInTest = errors.New("invalid question for this test")

	// ErrEmptySubmission rejects submissions with no answers. Grading an
	// empty set would make the percentage undefined.
	ErrEmptySubmission = errors.New("submission must contain at least one answer")

	// ErrInvalidTestDefinition rejects an authored test whose question
	// graph fails a check binding tags cannot express, such as duplicate
	// option labels within a question.
	ErrInvalidTestDefinition = errors.New("invalid test definition")

	// ErrAttemptTestMismatch rejects feedback for an attempt that does not
	// belong to the addressed test.
	ErrAttemptTestMismatch = errors.New("invalid attempt for this test")

	// ErrNotOwner means the authenticated admin does not own the test.
	ErrNotOwner = errors.New("not the owner of this test")
)
