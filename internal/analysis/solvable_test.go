package analysis_test

import (
	"testing"

	"github.com/stacklens/stacklens/internal/analysis"
	"github.com/stacklens/stacklens/internal/domain"
	"github.com/stacklens/stacklens/internal/logger"
)

func newSolvable() *analysis.Solvable {
	return analysis.NewSolvable(logger.NewNop(), nil)
}

func acceptedThread(q *domain.Question, answers ...domain.Answer) domain.Thread {
	if len(answers) == 0 {
		answers = []domain.Answer{{IsAccepted: true}}
	}
	return domain.Thread{Question: q, Answers: answers}
}

func TestSolvable_BasicStats(t *testing.T) {
	threads := []domain.Thread{
		acceptedThread(&domain.Question{}),
		acceptedThread(&domain.Question{}),
		acceptedThread(&domain.Question{}),
		{Question: &domain.Question{}},                                             // no answers
		{Question: &domain.Question{}, Answers: []domain.Answer{{IsAccepted: false}}}, // answered, not accepted
	}

	report := newSolvable().Analyze(threads)

	stats := report.BasicStats
	if stats.TotalSolvable != 3 || stats.TotalNotSolvable != 2 || stats.TotalQuestions != 5 {
		t.Errorf("split = %+v, want 3/2/5", stats)
	}
	if stats.SolvablePercentage != 60.0 || stats.NotSolvablePercentage != 40.0 {
		t.Errorf("percentages = %v/%v, want 60/40", stats.SolvablePercentage, stats.NotSolvablePercentage)
	}
}

func TestSolvable_AveragesSkipMissingFields(t *testing.T) {
	threads := []domain.Thread{
		acceptedThread(&domain.Question{Score: intPtr(10)}),
		acceptedThread(&domain.Question{Score: intPtr(20)}),
		acceptedThread(&domain.Question{}), // no score, excluded from the average
		{Question: &domain.Question{Score: intPtr(4)}},
	}

	report := newSolvable().Analyze(threads)

	if got := report.QuestionScore.SolvableAvg; got != 15.0 {
		t.Errorf("SolvableAvg = %v, want 15 (missing score skipped, not zeroed)", got)
	}
	if got := report.QuestionScore.NotSolvableAvg; got != 4.0 {
		t.Errorf("NotSolvableAvg = %v, want 4", got)
	}
	if got := report.QuestionScore.Difference; got != 11.0 {
		t.Errorf("Difference = %v, want 11", got)
	}
}

func TestSolvable_ReputationUsesQuestionOwner(t *testing.T) {
	rep := 500
	threads := []domain.Thread{
		acceptedThread(&domain.Question{Owner: &domain.Owner{Reputation: &rep}}),
		acceptedThread(&domain.Question{Owner: &domain.Owner{}}), // owner without reputation
		{Question: &domain.Question{}},
	}

	report := newSolvable().Analyze(threads)

	if got := report.ReputationAnalysis.SolvableAvg; got != 500.0 {
		t.Errorf("SolvableAvg = %v, want 500", got)
	}
	if got := report.ReputationAnalysis.NotSolvableAvg; got != 0.0 {
		t.Errorf("NotSolvableAvg = %v, want 0 for a cohort with no reputations", got)
	}
}

func TestSolvable_QuestionLengthStripsHTML(t *testing.T) {
	threads := []domain.Thread{
		acceptedThread(&domain.Question{Body: "<p>one two three</p>"}),
		{Question: &domain.Question{Body: "one"}},
	}

	report := newSolvable().Analyze(threads)

	if got := report.QuestionLength.SolvableAvgWords; got != 3.0 {
		t.Errorf("SolvableAvgWords = %v, want 3 (tags stripped before counting)", got)
	}
	if got := report.QuestionLength.SolvableAvgCharacters; got != 20.0 {
		t.Errorf("SolvableAvgCharacters = %v, want 20 (raw body length)", got)
	}
	if got := report.QuestionLength.NotSolvableAvgWords; got != 1.0 {
		t.Errorf("NotSolvableAvgWords = %v, want 1", got)
	}
}

func TestSolvable_CodeSnippetAnalysis(t *testing.T) {
	threads := []domain.Thread{
		acceptedThread(&domain.Question{Body: "see <code>x</code> and <pre>y</pre>"}),
		acceptedThread(&domain.Question{Body: "no code here"}),
		{Question: &domain.Question{Body: "```go\nfmt.Println()\n```"}},
	}

	report := newSolvable().Analyze(threads)

	cs := report.CodeSnippetAnalysis
	if cs.SolvableWithCodePercentage != 50.0 {
		t.Errorf("SolvableWithCodePercentage = %v, want 50", cs.SolvableWithCodePercentage)
	}
	if cs.SolvableAvgCodeBlocks != 1.0 {
		t.Errorf("SolvableAvgCodeBlocks = %v, want 1 ((2+0)/2)", cs.SolvableAvgCodeBlocks)
	}
	if cs.NotSolvableWithCodePercentage != 100.0 {
		t.Errorf("NotSolvableWithCodePercentage = %v, want 100", cs.NotSolvableWithCodePercentage)
	}
}

func TestSolvable_ResponseTimeUsesEarliestAnswer(t *testing.T) {
	created := int64(1_700_000_000)
	early := created + 2*3600
	late := created + 10*3600
	threads := []domain.Thread{
		{
			Question: &domain.Question{CreationDate: &created},
			Answers: []domain.Answer{
				{CreationDate: &late, IsAccepted: true},
				{CreationDate: &early},
			},
		},
	}

	report := newSolvable().Analyze(threads)

	if got := report.ResponseTimeAnalysis.SolvableAvgResponseHours; got != 2.0 {
		t.Errorf("SolvableAvgResponseHours = %v, want 2 (earliest answer, not accepted one)", got)
	}
}

func TestSolvable_NoAnswerPercentage(t *testing.T) {
	created := int64(1_700_000_000)
	threads := []domain.Thread{
		acceptedThread(&domain.Question{CreationDate: &created}),
		{Question: &domain.Question{}},
		{Question: &domain.Question{}},
		{Question: &domain.Question{}, Answers: []domain.Answer{{}}},
	}

	report := newSolvable().Analyze(threads)

	want := 66.67 // 2 of 3 unsolved threads have no answers
	if got := report.ResponseTimeAnalysis.NotSolvableNoAnswerPercentage; got != want {
		t.Errorf("NotSolvableNoAnswerPercentage = %v, want %v", got, want)
	}
}

func TestSolvable_EmptyCorpus(t *testing.T) {
	report := newSolvable().Analyze(nil)

	if report.BasicStats.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", report.BasicStats.TotalQuestions)
	}
	if report.BasicStats.SolvablePercentage != 0 {
		t.Errorf("SolvablePercentage = %v, want 0", report.BasicStats.SolvablePercentage)
	}
	if report.QuestionScore.SolvableAvg != 0 {
		t.Errorf("SolvableAvg = %v, want 0", report.QuestionScore.SolvableAvg)
	}
}
