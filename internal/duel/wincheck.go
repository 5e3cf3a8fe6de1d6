package duel

// RoundWinner decides a match from the two turns of one completed round.
// hostTurn is the record where the host guessed, guestTurn where the guest
// did. One winner and one loser settles it outright; two winners are split
// by fewer attempts used; a symmetric round (both lost, or both won with
// equal attempts) is a draw and play continues.
func RoundWinner(hostTurn, guestTurn TurnRecord) (Role, bool) {
	switch {
	case hostTurn.Won && !guestTurn.Won:
		return RoleHost, true
	case guestTurn.Won && !hostTurn.Won:
		return RoleGuest, true
	case hostTurn.Won && guestTurn.Won:
		if hostTurn.AttemptsUsed < guestTurn.AttemptsUsed {
			return RoleHost, true
		}
		if guestTurn.AttemptsUsed < hostTurn.AttemptsUsed {
			return RoleGuest, true
		}
	}
	return "", false
}
