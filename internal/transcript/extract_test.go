package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `Official Transcript
Fall Semester 2023
CS3310
Data StructuresLGA-2.00
MAT1234
Linear AlgebraLGA2.00
PHY2100
Intro MechanicsLGB+2.00
ENG1100
Academic WritingCRP1.00
`

func TestExtract_UnreadableText(t *testing.T) {
	_, err := Extract("   \n  x  \n", Policy{})
	require.ErrorIs(t, err, ErrUnreadableText)
}

func TestNormalize(t *testing.T) {
	lines := Normalize("“Data”  Structures\n\n  ‘A’ – B   C\n")
	require.Equal(t, []string{`"Data" Structures`, "'A' - B C"}, lines)
}

func TestRecombine(t *testing.T) {
	lines := []string{
		"Official Transcript",
		"CS3310",
		"Data StructuresLGA-2.00",
		"Some footer text",
	}
	combined := Recombine(lines)
	require.Equal(t, []string{"CS3310 Data StructuresLGA-2.00"}, combined)
}

func TestExtract_DefaultPolicyRejectsAMinus(t *testing.T) {
	res, err := Extract(sampleTranscript, Policy{})
	require.NoError(t, err)

	require.Len(t, res.Eligible, 1)
	assert.Equal(t, "MAT1234", res.Eligible[0].Code)
	assert.Equal(t, "Linear Algebra", res.Eligible[0].Title)
	assert.Equal(t, "A", res.Eligible[0].Grade)

	require.Len(t, res.NonEligible, 3)
	byCode := map[string]RejectedCourse{}
	for _, n := range res.NonEligible {
		byCode[n.Code] = n
	}
	assert.Equal(t, "grade below minimum", byCode["CS3310"].Reason)
	assert.Equal(t, "grade below minimum", byCode["PHY2100"].Reason)
	assert.Equal(t, "not letter-graded (type: CR)", byCode["ENG1100"].Reason)
}

func TestExtract_AMinusPolicyWidensEligibility(t *testing.T) {
	res, err := Extract(sampleTranscript, Policy{AcceptAMinus: true})
	require.NoError(t, err)

	require.Len(t, res.Eligible, 2)
	codes := []string{res.Eligible[0].Code, res.Eligible[1].Code}
	assert.Contains(t, codes, "CS3310")
	assert.Contains(t, codes, "MAT1234")
}

func TestExtract_DeduplicatesKeepingBestGrade(t *testing.T) {
	raw := `Transcript of Records
CS3310
Data StructuresLGA2.00
CS3310
Data Structures RetakeLGA+2.00
CS3310
Data Structures AgainLGA2.00
`
	res, err := Extract(raw, Policy{})
	require.NoError(t, err)

	require.Len(t, res.Eligible, 1)
	assert.Equal(t, "A+", res.Eligible[0].Grade)
	assert.Equal(t, "Data Structures Retake", res.Eligible[0].Title)
}

func TestExtract_RejectFirstOccurrenceWins(t *testing.T) {
	raw := `Transcript of Records
CS3310
Data StructuresCRP1.00
CS3310
Data StructuresNGF1.00
`
	res, err := Extract(raw, Policy{})
	require.NoError(t, err)

	require.Len(t, res.NonEligible, 1)
	assert.Equal(t, "not letter-graded (type: CR)", res.NonEligible[0].Reason)
}

func TestConfidenceBands(t *testing.T) {
	raw := `Transcript of Records
MAT1234
Linear AlgebraLGA2.00
CS3310
AlgoLGA2.00
`
	res, err := Extract(raw, Policy{})
	require.NoError(t, err)
	require.Len(t, res.Eligible, 2)

	byCode := map[string]EligibleCourse{}
	for _, e := range res.Eligible {
		byCode[e.Code] = e
	}
	// Three letters + four digits, long title: top band.
	assert.Equal(t, "high", byCode["MAT1234"].Confidence)
	// Two-letter prefix and a short title lose a point each.
	assert.Equal(t, "medium", byCode["CS3310"].Confidence)

	breakdown := res.ConfidenceBreakdown()
	assert.Equal(t, 1, breakdown["high"])
	assert.Equal(t, 1, breakdown["medium"])
	assert.Equal(t, 0, breakdown["low"])
}

func TestGradeRank(t *testing.T) {
	assert.Greater(t, GradeRank("A+"), GradeRank("A"))
	assert.Greater(t, GradeRank("A"), GradeRank("A-"))
	assert.Greater(t, GradeRank("A-"), GradeRank("B+"))
	assert.Equal(t, 0, GradeRank("B"))
	assert.Equal(t, 0, GradeRank("F"))
	assert.Equal(t, 0, GradeRank("unknown"))
}
