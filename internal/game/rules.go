package game

// CanPlaceOnColumn reports whether card may land on column. An empty column takes only
// a King; otherwise the top must be face up and exactly one rank higher. Colours are
// not checked: any descending rank is accepted.
func CanPlaceOnColumn(card Card, column []Card) bool {
	if len(column) == 0 {
		return card.Rank == King
	}
	top := column[len(column)-1]
	if !top.FaceUp {
		return false
	}
	return card.Rank == top.Rank-1
}

// CanPlaceOnFoundation reports whether card may land on foundation: an Ace on an empty
// pile, otherwise the next rank of the same suit.
func CanPlaceOnFoundation(card Card, foundation []Card) bool {
	if len(foundation) == 0 {
		return card.Rank == Ace
	}
	top := foundation[len(foundation)-1]
	return top.Suit == card.Suit && card.Rank == top.Rank+1
}

// SelectableRange returns the first index of the face-up run at the end of column.
// A drag may start at this index or any later one. Returns len(column) when nothing
// is selectable.
func SelectableRange(column []Card) int {
	i := len(column)
	for i > 0 && column[i-1].FaceUp {
		i--
	}
	return i
}

// IsColumnIndexSelectable reports whether a drag may start at fromIndex in column.
func IsColumnIndexSelectable(column []Card, fromIndex int) bool {
	return fromIndex >= SelectableRange(column) && fromIndex < len(column) && column[fromIndex].FaceUp
}
