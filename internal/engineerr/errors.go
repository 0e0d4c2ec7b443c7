// Package engineerr defines the typed error family returned across every
// aggregate in this engine, modeled on the teacher's cmd/server/errors.go
// GameError but generalized to the fixed error-code catalog from
// spec.md §6 and classified per spec.md §7.
package engineerr

import "fmt"

// Code is one of the fixed error codes named in spec.md §6.
type Code string

const (
	NotYourTurn                     Code = "NotYourTurn"
	GameAlreadyFinished             Code = "GameAlreadyFinished"
	TileCannotBeFound               Code = "TileCannotBeFound"
	TileCannotBePlacedHere          Code = "TileCannotBePlacedHere"
	FieldPlaceIsNotAvailable        Code = "FieldPlaceIsNotAvailable"
	NoTilesLeftInDeck               Code = "NoTilesLeftInDeck"
	NoItemsLeftInBag                Code = "NoItemsLeftInBag"
	InventoryFull                   Code = "InventoryFull"
	MissingKey                      Code = "MissingKey"
	CannotMoveAfterBattle           Code = "CannotMoveAfterBattle"
	CannotPlaceTileUntilPrevIsPlaced Code = "CannotPlaceTileUntilPreviousIsPlaced"
	InvalidTurnId                   Code = "InvalidTurnId"
	PositionUnreachable             Code = "PositionUnreachable"
	InventoryBlocks                 Code = "InventoryBlocks"
	EngineInvariant                 Code = "EngineInvariant"
)

// Class is the failure classification from spec.md §7, used by the
// transport layer to pick an HTTP status.
type Class int

const (
	ClassValidation Class = iota
	ClassResourceExhaustion
	ClassRuleConflict
	ClassEngineInvariant
)

func (c Code) Class() Class {
	switch c {
	case NoTilesLeftInDeck, NoItemsLeftInBag:
		return ClassResourceExhaustion
	case InventoryFull, MissingKey:
		return ClassRuleConflict
	case EngineInvariant:
		return ClassEngineInvariant
	default:
		return ClassValidation
	}
}

// Error is a typed engine error carrying a code and structured detail.
type Error struct {
	Code    Code
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetail attaches structured detail (e.g. inventory snapshot, missing
// chest type) surfaced to the client per spec.md §7 rule-conflict handling.
func (e *Error) WithDetail(detail map[string]any) *Error {
	e.Detail = detail
	return e
}

// As reports whether err is an *Error with the given code.
func As(err error, code Code) bool {
	ge, ok := err.(*Error)
	return ok && ge.Code == code
}
