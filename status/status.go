package status

// Status is a custom type to represent the states of a runoff
type Status int

const (
	// Idle means candidates were not yet associated to electors
	Idle Status = 0

	// Voting means electors are casting the ballots of a round
	Voting Status = 1

	// Checking means the round is closed and leaders are being computed
	Checking Status = 2

	// Eliminating means a tie was found and non leaders are being excluded
	Eliminating Status = 3

	// Done means a winner set is known
	Done Status = 4
)

var (
	statusText = map[Status]string{
		Idle:        "Election is idle",
		Voting:      "Electors are voting",
		Checking:    "Votes are being checked",
		Eliminating: "Candidates are being eliminated",
		Done:        "Election is done",
	}
)

// Text returns a text for a status. It returns the empty
// string if the status is unknown.
func Text(status Status) string {
	return statusText[status]
}

func (s Status) String() string {
	return Text(s)
}
