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

package types

// Fancy magic bitboards for the sliding pieces.
// https://www.chessprogramming.org/Magic_Bitboards
//
// The magic numbers and their offsets into the shared attack tables are
// fixed constants. They were discovered offline by a sparse random
// search and are baked into the binary. The blocker
// masks, shifts and attack tables are reproduced from them at startup.

// magicNumber is the baked in per square constant pair
type magicNumber struct {
	magic  Bitboard
	offset int
}

// Magic holds everything needed to look up sliding attacks
// for a single square
type Magic struct {
	mask    Bitboard
	magic   Bitboard
	shift   uint
	attacks []Bitboard // slice into the shared attack table
}

// attacks table sizes for all squares combined
const (
	rookAttackTableSize   = 102_400
	bishopAttackTableSize = 5_248
)

var (
	rookAttackTable   [rookAttackTableSize]Bitboard
	bishopAttackTable [bishopAttackTableSize]Bitboard

	rookMagics   [SqLength]Magic
	bishopMagics [SqLength]Magic
)

var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
)

// index computes the perfect hash index for the blocker set
//	occ &= mask; occ *= magic; occ >>= shift
func (m *Magic) index(occupied Bitboard) uint64 {
	occ := occupied & m.mask
	occ *= m.magic
	return uint64(occ >> m.shift)
}

// attacksBb is the lookup used by GetAttacksBb
func (m *Magic) attacksBb(occupied Bitboard) Bitboard {
	return m.attacks[m.index(occupied)]
}

// initMagics builds the blocker masks and fills the shared attack
// tables for every square by enumerating all blocker subsets with the
// Carry-Rippler trick.
// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
func initMagics() {
	initMagicTable(rookMagicNumbers, rookAttackTable[:], &rookMagics, rookDirections)
	initMagicTable(bishopMagicNumbers, bishopAttackTable[:], &bishopMagics, bishopDirections)
}

func initMagicTable(numbers [SqLength]magicNumber, table []Bitboard, magics *[SqLength]Magic, directions [4]Direction) {
	for sq := SqA1; sq < SqNone; sq++ {
		m := &magics[sq]
		m.magic = numbers[sq].magic
		m.mask = blockerMask(sq, directions)
		m.shift = uint(64 - m.mask.PopCount())
		size := 1 << m.mask.PopCount()
		m.attacks = table[numbers[sq].offset : numbers[sq].offset+size]

		blockers := BbZero
		for {
			m.attacks[m.index(blockers)] = slidingAttack(sq, blockers, directions)
			blockers = (blockers - m.mask) & m.mask
			if blockers == BbZero {
				break
			}
		}
	}
}

// blockerMask returns the squares whose occupancy matters for sliding
// attacks from sq. Edge squares along each ray never matter for
// blocking and are excluded.
func blockerMask(sq Square, directions [4]Direction) Bitboard {
	mask := BbZero
	for _, d := range directions {
		s := sq
		for {
			next := s.To(d)
			if next == SqNone {
				break
			}
			mask.PushSquare(s)
			s = next
		}
	}
	mask.PopSquare(sq)
	return mask
}

// slidingAttack computes the attacked squares from sq with the given
// blockers by walking the rays. Slow but only used for the one time
// table setup.
func slidingAttack(sq Square, blockers Bitboard, directions [4]Direction) Bitboard {
	attacks := BbZero
	for _, d := range directions {
		s := sq
		for {
			s = s.To(d)
			if s == SqNone {
				break
			}
			attacks.PushSquare(s)
			if blockers.Has(s) {
				break
			}
		}
	}
	return attacks
}

// per square rook magics and attack table offsets
var rookMagicNumbers = [SqLength]magicNumber{
	{0x0040004094200000, 0},
	{0x0080106001400001, 4096},
	{0x0004121008098000, 6144},
	{0x2010020090040001, 8192},
	{0x05000800A4030000, 10240},
	{0x0080122005040000, 12288},
	{0x0080054020820000, 14336},
	{0x4080004028811000, 16384},
	{0xD129101100400000, 20480},
	{0xA200604009200002, 22528},
	{0x5380080220010000, 23552},
	{0x0206040010020000, 24576},
	{0x0108200800040000, 25600},
	{0x00288048D21C0000, 26624},
	{0x2880202080F20000, 27648},
	{0x4101080181000200, 28672},
	{0x0580004801900000, 30720},
	{0x0580004801900000, 32768},
	{0x4080001002E00008, 33792},
	{0x2000052BD0020000, 34816},
	{0x00C0004804004000, 35840},
	{0x0400080024102022, 36864},
	{0x0041056002004400, 37888},
	{0x00430E2008004000, 38912},
	{0x0100004020200000, 40960},
	{0x2000052BD0020000, 43008},
	{0x0005005802080000, 44032},
	{0x0800002100100000, 45056},
	{0x080000C20A046000, 46080},
	{0x0501200380140000, 47104},
	{0x00000001C0020800, 48128},
	{0x00000001C0020800, 49152},
	{0x0100004020200000, 51200},
	{0x0000020110808040, 53248},
	{0x4080001002E00008, 54272},
	{0x1500004012100001, 55296},
	{0x00C0004804004000, 56320},
	{0x4000010008820000, 57344},
	{0x4000010008820000, 58368},
	{0x0600080052100400, 59392},
	{0x80000C9614140010, 61440},
	{0x80000C9614140010, 63488},
	{0x2801092000410008, 64512},
	{0x00C0004804004000, 65536},
	{0x0000019040040000, 66560},
	{0x080000C20A046000, 67584},
	{0x080000C20A046000, 68608},
	{0x0009115009048000, 69632},
	{0xC000068446080050, 71680},
	{0x1080041441002210, 73728},
	{0x1000003001002108, 74752},
	{0x1002500180080280, 75776},
	{0x8010000861100400, 76800},
	{0x4408000218400500, 77824},
	{0x8010000861100400, 78848},
	{0x12C0000959000080, 79872},
	{0x2000004129008001, 81920},
	{0x2600011080220102, 86016},
	{0x8800100941A08202, 88064},
	{0x0240000400604084, 90112},
	{0x0000002090068244, 92160},
	{0x0020004A04088009, 94208},
	{0x80004486480B1004, 96256},
	{0x0002000102441082, 98304},
}

// per square bishop magics and attack table offsets
var bishopMagicNumbers = [SqLength]magicNumber{
	{0x8084085004042000, 0},
	{0x04A8108146200010, 64},
	{0x9001020600500008, 96},
	{0x0404484008000000, 128},
	{0x0008440000160040, 160},
	{0x0202020200900108, 192},
	{0x4183440208000800, 224},
	{0x240104004E280090, 256},
	{0x2012149022020008, 320},
	{0x2012149022020008, 352},
	{0x04A8108146200010, 384},
	{0x8000A40040082020, 416},
	{0x00800A0801080080, 448},
	{0x0000020110808040, 480},
	{0x00800A0801080080, 512},
	{0x0180010048040046, 544},
	{0x8000080655080000, 576},
	{0x00800A0801080080, 608},
	{0x0000442800740008, 640},
	{0x0420008C00500000, 768},
	{0x0100000100C01014, 896},
	{0x0000020110808040, 1024},
	{0x02002C5088180804, 1152},
	{0x0000020110808040, 1184},
	{0x8000A40040082020, 1216},
	{0x0000900020AC0090, 1248},
	{0x00800A0801080080, 1280},
	{0x00C0004804004000, 1408},
	{0x0420008C00500000, 1920},
	{0x0420008C00500000, 2432},
	{0x0000020110808040, 2560},
	{0x0000020110808040, 2592},
	{0x8000080655080000, 2624},
	{0x8000080655080000, 2656},
	{0x0800002100100000, 2688},
	{0x400000044000C002, 2816},
	{0x00C0004804004000, 3328},
	{0x8000A40040082020, 3840},
	{0x5000310200232084, 3968},
	{0x5000310200232084, 4000},
	{0x0050021006000010, 4032},
	{0x0000020110808040, 4064},
	{0x0420008C00500000, 4096},
	{0x0000020110808040, 4224},
	{0x0420008C00500000, 4352},
	{0x0420008C00500000, 4480},
	{0x04A8108146200010, 4608},
	{0x0420008C00500000, 4640},
	{0x02002C5088180804, 4672},
	{0x00800A0801080080, 4704},
	{0x240104004E280090, 4736},
	{0x0010100000540408, 4768},
	{0x1004040004070860, 4800},
	{0x00800A0801080080, 4832},
	{0x0280200401404080, 4864},
	{0x4C400C808244A018, 4896},
	{0x080000B202024800, 4928},
	{0x000C900104101408, 4992},
	{0x1000040000845018, 5024},
	{0x0016804085808209, 5056},
	{0x0010100000540408, 5088},
	{0x000C900104101408, 5120},
	{0x4080002006020040, 5152},
	{0x0000020082008100, 5184},
}
