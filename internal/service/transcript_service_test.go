package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/transcript"
)

const sampleTranscriptText = `Official Transcript
Fall Semester 2023
MAT1234
Linear AlgebraLGA2.00
CS3310
Data StructuresLGA-2.00
ENG1100
Academic WritingCRP1.00
`

func newTranscriptFixture(policy transcript.Policy) (*fixture, *TranscriptService) {
	f := newFixture()
	return f, NewTranscriptService(f.store, f.users, policy, zap.NewNop())
}

func TestTranscriptIngest(t *testing.T) {
	f, svc := newTranscriptFixture(transcript.Policy{AcceptAMinus: true})
	ctx := context.Background()

	result, summary, err := svc.Ingest(ctx, "ana@uni.edu", "transcript.pdf",
		[]byte("%PDF-1.4 fake"), sampleTranscriptText)
	require.NoError(t, err)

	assert.Len(t, result.Eligible, 2)
	assert.Len(t, result.NonEligible, 1)
	assert.Equal(t, 3, summary.TotalCourses)
	assert.Equal(t, 2, summary.Eligible)
	assert.Equal(t, 1, summary.NonEligible)

	// Ingest audits but never adds courses by itself.
	require.Len(t, f.store.ingests, 1)
	ingest := f.store.ingests[0]
	assert.Equal(t, "transcript.pdf", ingest.Filename)
	assert.NotEmpty(t, ingest.ContentHash)
	assert.NotEmpty(t, ingest.Result)
	assert.Zero(t, ingest.AddedCount)

	courses, err := svc.ListCourses(ctx, "ana@uni.edu")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestTranscriptIngest_UnreadableText(t *testing.T) {
	f, svc := newTranscriptFixture(transcript.Policy{})
	ctx := context.Background()

	_, _, err := svc.Ingest(ctx, "ana@uni.edu", "scan.pdf", []byte("binary"), "  ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.store.ingests)
}

func TestAddSelectedCourses_UpgradeOnly(t *testing.T) {
	_, svc := newTranscriptFixture(transcript.Policy{})
	ctx := context.Background()

	added, err := svc.AddSelectedCourses(ctx, "ana@uni.edu", []SelectedCourse{
		{Code: "CS3310", Grade: "A-"},
		{Code: "MAT1234", Grade: "A"},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)

	// A better grade replaces the stored one.
	_, err = svc.AddSelectedCourses(ctx, "ana@uni.edu", []SelectedCourse{{Code: "CS3310", Grade: "A+"}})
	require.NoError(t, err)

	// A worse or equal grade does not.
	_, err = svc.AddSelectedCourses(ctx, "ana@uni.edu", []SelectedCourse{
		{Code: "CS3310", Grade: "A"},
		{Code: "MAT1234", Grade: "A"},
	})
	require.NoError(t, err)

	courses, err := svc.ListCourses(ctx, "ana@uni.edu")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS3310", courses[0].CourseCode)
	assert.Equal(t, "A+", courses[0].Grade)
	assert.Equal(t, "MAT1234", courses[1].CourseCode)
	assert.Equal(t, "A", courses[1].Grade)
}

func TestAddSelectedCourses_Validation(t *testing.T) {
	_, svc := newTranscriptFixture(transcript.Policy{})
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.AddSelectedCourses(ctx, "ana@uni.edu", nil)
	require.ErrorAs(t, err, &verr)

	_, err = svc.AddSelectedCourses(ctx, "ana@uni.edu", []SelectedCourse{{Code: "CS3310"}})
	require.ErrorAs(t, err, &verr)
}
