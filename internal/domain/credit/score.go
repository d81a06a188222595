package credit

const (
	MinScore = 0
	MaxScore = 100

	pointsNoHistory       = 10
	pointsReliablePayer   = 35
	pointsIrregularPayer  = 20
	pointsFewLoans        = 15
	pointsManyLoans       = 5
	pointsQuietYear       = 15
	pointsBusyYear        = 5
	pointsLowUtilization  = 20
	pointsHighUtilization = 5

	onTimeRatioThreshold = 0.9
	maxLoansForFewLoans  = 3
	maxLoansForQuietYear = 2
)

// Score derives a 0-100 credit score from the applicant's exposure and loan
// history. A customer whose current debt exceeds the approved limit always
// scores zero.
func (e *Engine) Score(applicant Applicant, history []LoanRecord) int {
	if applicant.CurrentDebt > applicant.ApprovedLimit {
		return MinScore
	}

	score := repaymentPoints(history)

	if len(history) <= maxLoansForFewLoans {
		score += pointsFewLoans
	} else {
		score += pointsManyLoans
	}

	if loansStartedInYear(history, e.clock.Now().Year()) <= maxLoansForQuietYear {
		score += pointsQuietYear
	} else {
		score += pointsBusyYear
	}

	if totalLoanAmount(history) < applicant.ApprovedLimit {
		score += pointsLowUtilization
	} else {
		score += pointsHighUtilization
	}

	return min(score, MaxScore)
}

func repaymentPoints(history []LoanRecord) int {
	if len(history) == 0 {
		return pointsNoHistory
	}

	var paidOnTime, tenure int64
	for _, l := range history {
		paidOnTime += int64(l.EMIsPaidOnTime)
		tenure += int64(l.Tenure)
	}
	if tenure > 0 && float64(paidOnTime)/float64(tenure) > onTimeRatioThreshold {
		return pointsReliablePayer
	}
	return pointsIrregularPayer
}

func loansStartedInYear(history []LoanRecord, year int) int {
	count := 0
	for _, l := range history {
		if l.StartDate.Year() == year {
			count++
		}
	}
	return count
}

func totalLoanAmount(history []LoanRecord) int64 {
	var total int64
	for _, l := range history {
		total += l.LoanAmount
	}
	return total
}
