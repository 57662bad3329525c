package game

// Evaluate decides the outcome of a finished round.
func Evaluate(kills, goal int) Outcome {
	if kills >= goal {
		return OutcomeWin
	}
	return OutcomeLose
}
