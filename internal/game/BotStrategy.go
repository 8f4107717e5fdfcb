package game

// Strategy picks the next direction for an unattended snake. It only ever
// sees a Snapshot; GameState.SetDirection still filters reversals.
type Strategy interface {
	GetNextBestDirection(snapshot Snapshot) Direction
}
