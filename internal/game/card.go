package game

import (
	"fmt"
)

type Suit int
type Rank int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits is the canonical suit order. A foundation's home slot is its suit's index.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = []string{"Hearts", "Diamonds", "Clubs", "Spades"}
var suitSymbols = []string{"♥", "♦", "♣", "♠"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = []string{"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King"}
var rankShort = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Red reports whether the suit is drawn in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Short returns the one or two character label used on card faces.
func (r Rank) Short() string {
	if !r.Valid() {
		return "?"
	}
	return rankShort[r]
}

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card is a single playing card. The ID is assigned once per game and never changes
// while the card moves between containers.
type Card struct {
	ID     string `json:"id"`
	Suit   Suit   `json:"suit"`
	Rank   Rank   `json:"rank"`
	FaceUp bool   `json:"faceUp"`
}

// Flipped returns a copy of the card with the given face state.
func (c Card) Flipped(faceUp bool) Card {
	c.FaceUp = faceUp
	return c
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Label returns a compact label such as "7♣".
func (c Card) Label() string {
	return c.Rank.Short() + c.Suit.Symbol()
}
