//
// Krusty - UCI chess engine in GO
//
// MIT License
//
// Copyright (c) 2022 Billy Levin
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package position represents data structures and functions for a chess
// board and its position.
// It uses bitboards and a redundant 8x8 piece board (mailbox), a stack
// for undoing moves and incrementally maintained zobrist keys for
// transposition tables.
//
// Create a new instance with NewPosition() (start position) or
// NewPositionFen(fen).
package position

import (
	"fmt"
	"strconv"
	"strings"

	"errors"

	. "github.com/BillyLevin/krusty/internal/types"
)

var initialized = false

func init() {
	if !initialized {
		initZobrist()
		initCastlingMasks()
		initialized = true
	}
}

// StartFen is the fen string of the standard chess start position
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position represents the chess board and its state.
// The mailbox (board) and the piece bitboards are redundant on purpose
// and are kept in lockstep: the mailbox gives O(1) piece-at-square, the
// bitboards drive move generation.
type Position struct {
	// The zobrist key to use as a hash key in transposition tables.
	// Updated incrementally every time one of the state variables changes.
	zobristKey Key

	// board state
	board           [SqLength]Piece
	piecesBb        [ColorLength][PtLength]Bitboard
	occupiedBb      [ColorLength]Bitboard
	kingSquare      [ColorLength]Square
	nextPlayer      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int

	// the actual half move number to determine the full move number
	nextHalfMoveNumber int

	// history for undo and repetition detection. Grows on make,
	// shrinks on unmake. Sized for maximum game length plus maximum
	// search depth so make never allocates.
	history        [maxHistory]historyState
	historyCounter int
}

// maxHistory bounds the history stack: longest reasonable game plus
// the maximum search depth
const maxHistory = 768

// historyState is the snapshot pushed by MakeMove which makes the
// move exactly reversible
type historyState struct {
	zobristKey      Key
	move            Move
	movedPiece      Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
}

// castlingMask holds for each square the castling rights which are
// extinguished when a move touches the square (king/rook moves and
// rook captures)
var castlingMask [SqLength]CastlingRights

func initCastlingMasks() {
	castlingMask[SqE1] = CastlingWhite
	castlingMask[SqH1] = CastlingWhiteOO
	castlingMask[SqA1] = CastlingWhiteOOO
	castlingMask[SqE8] = CastlingBlack
	castlingMask[SqH8] = CastlingBlackOO
	castlingMask[SqA8] = CastlingBlackOOO
}

// NewPosition creates a new position with the standard start position
func NewPosition() *Position {
	p, _ := NewPositionFen(StartFen)
	return p
}

// NewPositionFen creates a new position from the given fen string.
// Returns nil and an error if the fen is invalid. A successful parse
// always yields a position with an empty history.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{
		enPassantSquare: SqNone,
		kingSquare:      [ColorLength]Square{SqNone, SqNone},
	}
	for sq := SqA1; sq <= SqH8; sq++ {
		p.board[sq] = PieceNone
	}
	if err := p.setupBoard(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// MakeMove commits a move to the board and returns whether the move
// was legal (does not leave the own king in check). On false the
// caller is obliged to call UndoMove before continuing.
func (p *Position) MakeMove(m Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	fromSq := m.From()
	toSq := m.To()
	movedPiece := p.board[fromSq]

	if movedPiece == PieceNone {
		panic(fmt.Sprintf("MakeMove: no piece on %s for move %s", fromSq.String(), m.StringUci()))
	}

	// snapshot for undo
	entry := &p.history[p.historyCounter]
	p.historyCounter++
	entry.zobristKey = p.zobristKey
	entry.move = m
	entry.movedPiece = movedPiece
	entry.capturedPiece = PieceNone
	entry.castlingRights = p.castlingRights
	entry.enPassantSquare = p.enPassantSquare
	entry.halfMoveClock = p.halfMoveClock

	p.removePiece(fromSq)
	p.setEnPassant(SqNone)
	p.halfMoveClock++
	if movedPiece.TypeOf() == Pawn {
		p.halfMoveClock = 0
	}

	switch m.Kind() {
	case Quiet:
		p.putPiece(movedPiece, toSq)
		// pawn double push - set the en passant square behind the pawn
		// but only when an enemy pawn can actually capture there
		if movedPiece.TypeOf() == Pawn && (int(fromSq)-int(toSq) == 16 || int(toSq)-int(fromSq) == 16) {
			epSq := Square((int(fromSq) + int(toSq)) / 2)
			if GetPawnAttacks(us, epSq)&p.piecesBb[them][Pawn] != 0 {
				p.setEnPassant(epSq)
			}
		}

	case Capture:
		if m.Flag() == FlagEnPassant {
			capSq := Square(int8(toSq) - us.MoveDirection()*8)
			entry.capturedPiece = p.board[capSq]
			p.removePiece(capSq)
		} else {
			entry.capturedPiece = p.board[toSq]
			p.removePiece(toSq)
		}
		p.putPiece(movedPiece, toSq)
		p.halfMoveClock = 0

	case Castle:
		p.putPiece(movedPiece, toSq)
		switch toSq {
		case SqG1:
			p.movePiece(SqH1, SqF1)
		case SqC1:
			p.movePiece(SqA1, SqD1)
		case SqG8:
			p.movePiece(SqH8, SqF8)
		case SqC8:
			p.movePiece(SqA8, SqD8)
		default:
			panic(fmt.Sprintf("MakeMove: invalid castle target %s", toSq.String()))
		}

	case Promotion:
		if m.PromotionType() == PtNone {
			panic(fmt.Sprintf("MakeMove: promotion move without promotion flag: %s", m.String()))
		}
		if p.board[toSq] != PieceNone {
			entry.capturedPiece = p.board[toSq]
			p.removePiece(toSq)
		}
		p.putPiece(MakePiece(us, m.PromotionType()), toSq)
		p.halfMoveClock = 0
	}

	// castling rights can only be lost, never re-granted
	if p.castlingRights != CastlingNone {
		lost := castlingMask[fromSq] | castlingMask[toSq]
		if p.castlingRights&lost != 0 {
			p.zobristKey ^= zobristCastling(p.castlingRights)
			p.castlingRights.Remove(lost)
			p.zobristKey ^= zobristCastling(p.castlingRights)
		}
	}

	p.nextHalfMoveNumber++
	p.nextPlayer = them
	p.zobristKey ^= zobristSide()

	return !p.IsAttacked(p.kingSquare[us], them)
}

// UndoMove resets the position to the state before the last move.
// All fields including the zobrist key are restored to byte identity.
func (p *Position) UndoMove() {
	if p.historyCounter == 0 {
		panic("UndoMove: cannot undo initial position")
	}
	p.historyCounter--
	entry := p.history[p.historyCounter]

	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	us := p.nextPlayer
	m := entry.move
	fromSq := m.From()
	toSq := m.To()

	switch m.Kind() {
	case Quiet:
		p.movePiece(toSq, fromSq)
	case Capture:
		p.movePiece(toSq, fromSq)
		if m.Flag() == FlagEnPassant {
			capSq := Square(int8(toSq) - us.MoveDirection()*8)
			p.putPiece(entry.capturedPiece, capSq)
		} else {
			p.putPiece(entry.capturedPiece, toSq)
		}
	case Castle:
		p.movePiece(toSq, fromSq)
		switch toSq {
		case SqG1:
			p.movePiece(SqF1, SqH1)
		case SqC1:
			p.movePiece(SqD1, SqA1)
		case SqG8:
			p.movePiece(SqF8, SqH8)
		case SqC8:
			p.movePiece(SqD8, SqA8)
		}
	case Promotion:
		p.removePiece(toSq)
		p.putPiece(MakePiece(us, Pawn), fromSq)
		if entry.capturedPiece != PieceNone {
			p.putPiece(entry.capturedPiece, toSq)
		}
	}

	p.castlingRights = entry.castlingRights
	p.enPassantSquare = entry.enPassantSquare
	p.halfMoveClock = entry.halfMoveClock
	p.zobristKey = entry.zobristKey
}

// MakeNullMove switches the side to move without moving a piece.
// Used for null move pruning hooks in the search.
func (p *Position) MakeNullMove() {
	entry := &p.history[p.historyCounter]
	p.historyCounter++
	entry.zobristKey = p.zobristKey
	entry.move = MoveNone
	entry.movedPiece = PieceNone
	entry.capturedPiece = PieceNone
	entry.castlingRights = p.castlingRights
	entry.enPassantSquare = p.enPassantSquare
	entry.halfMoveClock = p.halfMoveClock
	p.setEnPassant(SqNone)
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristSide()
}

// UndoNullMove restores the state before MakeNullMove
func (p *Position) UndoNullMove() {
	p.historyCounter--
	entry := p.history[p.historyCounter]
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	p.enPassantSquare = entry.enPassantSquare
	p.halfMoveClock = entry.halfMoveClock
	p.zobristKey = entry.zobristKey
}

// IsAttacked checks if the given square is attacked by any piece of
// the given color. Uses the reverse lookup trick for pawns and the
// magic attack tables for the sliders.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0 {
		return true
	}
	if GetAttacksBb(Knight, sq, BbZero)&p.piecesBb[by][Knight] != 0 {
		return true
	}
	if GetAttacksBb(King, sq, BbZero)&p.piecesBb[by][King] != 0 {
		return true
	}
	occupied := p.OccupiedAll()
	if GetAttacksBb(Rook, sq, occupied)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	if GetAttacksBb(Bishop, sq, occupied)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	return false
}

// HasCheck returns true if the next player's king is attacked
func (p *Position) HasCheck() bool {
	return p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
}

// CheckRepetitions returns true if the current position occurred at
// least reps times before. Only positions since the last irreversible
// move (pawn move or capture, detected by the half move clock) can
// repeat, so the scan stops there.
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
			if counter >= reps {
				return true
			}
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial returns true if no side has enough material
// to force a mate: K vs K, K+minor vs K and KB vs KB with both
// bishops on squares of the same color.
func (p *Position) HasInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.piecesBb[c][Pawn]|p.piecesBb[c][Rook]|p.piecesBb[c][Queen] != 0 {
			return false
		}
	}
	whiteMinors := p.piecesBb[White][Knight].PopCount() + p.piecesBb[White][Bishop].PopCount()
	blackMinors := p.piecesBb[Black][Knight].PopCount() + p.piecesBb[Black][Bishop].PopCount()

	// bare kings or a lone minor piece
	if whiteMinors+blackMinors <= 1 {
		return true
	}

	// bishop against bishop on same colored squares
	if whiteMinors == 1 && blackMinors == 1 &&
		p.piecesBb[White][Bishop] != 0 && p.piecesBb[Black][Bishop] != 0 {
		wb := p.piecesBb[White][Bishop].Lsb()
		bb := p.piecesBb[Black][Bishop].Lsb()
		wColor := (int(wb.FileOf()) + int(wb.RankOf())) & 1
		bColor := (int(bb.FileOf()) + int(bb.RankOf())) & 1
		return wColor == bColor
	}
	return false
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

func (p *Position) putPiece(piece Piece, sq Square) {
	if p.board[sq] != PieceNone {
		panic(fmt.Sprintf("putPiece: square %s already occupied", sq.String()))
	}
	color := piece.ColorOf()
	pieceType := piece.TypeOf()
	p.board[sq] = piece
	if pieceType == King {
		p.kingSquare[color] = sq
	}
	p.piecesBb[color][pieceType].PushSquare(sq)
	p.occupiedBb[color].PushSquare(sq)
	p.zobristKey ^= zobristPiece(piece, sq)
}

func (p *Position) removePiece(sq Square) Piece {
	removed := p.board[sq]
	if removed == PieceNone {
		panic(fmt.Sprintf("removePiece: square %s is empty", sq.String()))
	}
	color := removed.ColorOf()
	pieceType := removed.TypeOf()
	p.board[sq] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(sq)
	p.occupiedBb[color].PopSquare(sq)
	p.zobristKey ^= zobristPiece(removed, sq)
	return removed
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

// setEnPassant changes the en passant square keeping the zobrist key
// in sync. The "no ep" slot is part of the key so the key is always
// adjusted for both the old and new square.
func (p *Position) setEnPassant(sq Square) {
	p.zobristKey ^= zobristEnPassant(p.enPassantSquare)
	p.enPassantSquare = sq
	p.zobristKey ^= zobristEnPassant(sq)
}

// //////////////////////////////////////////////////////////
// FEN
// //////////////////////////////////////////////////////////

// setupBoard sets up the board from a fen string. The fen must have
// all 6 standard fields; any deviation is a hard parse error.
func (p *Position) setupBoard(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return fmt.Errorf("fen must have 6 fields, got %d", len(fields))
	}

	// field 1: piece placement, ranks 8..1 separated by '/'
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen must have 8 ranks, got %d", len(ranks))
	}
	for r, rankFen := range ranks {
		rank := Rank8 - Rank(r)
		file := FileA
		for i := 0; i < len(rankFen); i++ {
			c := rankFen[i]
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == PieceNone {
				return fmt.Errorf("fen has invalid piece character %q", c)
			}
			if file > FileH {
				return fmt.Errorf("fen rank %s has too many squares", rank.String())
			}
			p.putPiece(piece, SquareOf(file, rank))
			file++
		}
		if file != FileNone {
			return fmt.Errorf("fen rank %s is incomplete", rank.String())
		}
	}
	if p.piecesBb[White][King].PopCount() != 1 || p.piecesBb[Black][King].PopCount() != 1 {
		return errors.New("fen must have exactly one king per side")
	}

	// field 2: side to move
	switch fields[1] {
	case "w":
		p.nextPlayer = White
	case "b":
		p.nextPlayer = Black
		p.zobristKey ^= zobristSide()
	default:
		return fmt.Errorf("fen has invalid side to move %q", fields[1])
	}

	// field 3: castling rights
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castlingRights.Add(CastlingWhiteOO)
			case 'Q':
				p.castlingRights.Add(CastlingWhiteOOO)
			case 'k':
				p.castlingRights.Add(CastlingBlackOO)
			case 'q':
				p.castlingRights.Add(CastlingBlackOOO)
			default:
				return fmt.Errorf("fen has invalid castling character %q", fields[2][i])
			}
		}
	}
	p.zobristKey ^= zobristCastling(p.castlingRights)

	// field 4: en passant square
	if fields[3] != "-" {
		sq := MakeSquare(fields[3])
		if sq == SqNone || (sq.RankOf() != Rank3 && sq.RankOf() != Rank6) {
			return fmt.Errorf("fen has invalid en passant square %q", fields[3])
		}
		p.enPassantSquare = sq
	}
	p.zobristKey ^= zobristEnPassant(p.enPassantSquare)

	// field 5: half move clock
	halfMoves, err := strconv.Atoi(fields[4])
	if err != nil || halfMoves < 0 {
		return fmt.Errorf("fen has invalid half move clock %q", fields[4])
	}
	p.halfMoveClock = halfMoves

	// field 6: full move number (parsed but not used by search)
	moveNumber, err := strconv.Atoi(fields[5])
	if err != nil || moveNumber < 0 {
		return fmt.Errorf("fen has invalid move number %q", fields[5])
	}
	if moveNumber == 0 {
		moveNumber = 1
	}
	p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))

	return nil
}

// StringFen returns the FEN string of the current position
func (p *Position) StringFen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(strconv.Itoa(emptySquares))
				emptySquares = 0
			}
			fen.WriteString(pc.String())
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

// StringBoard returns a visual matrix of the board and pieces
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// String returns a string representation of the position including
// the fen and a board matrix
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	return os.String()
}

// //////////////////////////////////////////////////////////
// Getters
// //////////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the next player as Color
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square or PieceNone
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a bitboard of all pieces of color c
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// KingSquare returns the current square of the king of color c
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// GetEnPassantSquare returns the en passant square or SqNone
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// HalfMoveClock returns the position's half move clock (50-move rule)
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// HistoryLength returns the number of moves played on this position
func (p *Position) HistoryLength() int {
	return p.historyCounter
}

// LastMove returns the last move made on the position or MoveNone
func (p *Position) LastMove() Move {
	if p.historyCounter == 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// IsCapturingMove determines if a move on this position captures,
// including en passant
func (p *Position) IsCapturingMove(m Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(m.To()) || m.Flag() == FlagEnPassant
}
