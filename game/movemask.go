package game

// generateMoveMask computes the targets of the piece on index. When probe is
// set it stands in for whatever occupies index; probes are used by the attack
// detector and skip the self-check filter.
func (b *Board) generateMoveMask(index int, probe *Piece) Mask {
	var mask Mask
	piece := b.PieceAt(index)
	if probe != nil {
		piece = *probe
	}
	pos := IndexToVector(index)

	switch piece.PieceType {
	case PAWN:
		mask = b.getPawnMovements(pos, piece)
	case KNIGHT:
		mask = b.getLeapingMovements(pos, piece, leapOffsets[KNIGHT])
	case KING:
		mask = b.getLeapingMovements(pos, piece, leapOffsets[KING])
		if piece.State == UNMOVED {
			b.addCastlingMovements(&mask, pos, piece.Player)
		}
	case QUEEN, ROOK, BISHOP:
		mask = b.getContinuousMovingPieceMovements(pos, piece.Player, slideDirections[piece.PieceType])
	case NO_PIECE:
		return mask
	}

	if probe == nil {
		for _, target := range mask.Squares() {
			if b.IsAttacked(piece.Player, index, target) {
				mask.Clear(target)
			}
		}
	}
	return mask
}

func (b *Board) getPawnMovements(pos Vector, pawn Piece) Mask {
	var mask Mask
	offsets := pawnOffsets[pawn.Player]
	for _, offset := range offsets[pawnMove] {
		if target := pos.Add(offset); VectorInBounds(target) && b.isEmpty(VectorToIndex(target)) {
			mask.Set(VectorToIndex(target))
		}
	}
	if pawn.State == UNMOVED {
		for _, offset := range offsets[pawnDouble] {
			if target := pos.Add(offset); VectorInBounds(target) && b.isEmpty(VectorToIndex(target)) {
				mask.Set(VectorToIndex(target))
			}
		}
	}
	for _, offset := range offsets[pawnTake] {
		target := pos.Add(offset)
		if !VectorInBounds(target) {
			continue
		}
		occupant := b.squares[VectorToIndex(target)]
		if !occupant.IsEmpty() && occupant.Player != pawn.Player {
			mask.Set(VectorToIndex(target))
		}
	}
	return mask
}

func (b *Board) getLeapingMovements(pos Vector, piece Piece, offsets []Vector) Mask {
	var mask Mask
	for _, offset := range offsets {
		target := pos.Add(offset)
		if !VectorInBounds(target) {
			continue
		}
		occupant := b.squares[VectorToIndex(target)]
		if occupant.IsEmpty() || occupant.Player != piece.Player {
			mask.Set(VectorToIndex(target))
		}
	}
	return mask
}

// addCastlingMovements adds the two-file king steps towards an unmoved rook
// of the same side when every square in between is empty.
func (b *Board) addCastlingMovements(mask *Mask, pos Vector, player PLAYER) {
	castles := []struct {
		step     int
		rookDist int
	}{
		{kingSideStep, kingSideRook},
		{queenSideStep, queenSideRook},
	}
	for _, castle := range castles {
		rookPos := Vector{pos.X + castle.step*castle.rookDist, pos.Y, pos.Z}
		if !VectorInBounds(rookPos) {
			continue
		}
		rook := b.squares[VectorToIndex(rookPos)]
		if rook.PieceType != ROOK || rook.Player != player || rook.State != UNMOVED {
			continue
		}
		pathFree := true
		for dist := 1; dist < castle.rookDist; dist++ {
			if !b.isEmpty(VectorToIndex(Vector{pos.X + castle.step*dist, pos.Y, pos.Z})) {
				pathFree = false
				break
			}
		}
		if pathFree {
			mask.Set(VectorToIndex(Vector{pos.X + castle.step*castleKingShift, pos.Y, pos.Z}))
		}
	}
}

func (b *Board) getContinuousMovingPieceMovements(pos Vector, player PLAYER, directions []Vector) Mask {
	var mask Mask
	for _, direction := range directions {
		for distance := 1; ; distance++ {
			target := pos.Add(direction.Scale(distance))
			if !VectorInBounds(target) {
				break
			}
			index := VectorToIndex(target)
			occupant := b.squares[index]
			if occupant.IsEmpty() {
				mask.Set(index)
				continue
			}
			if occupant.Player != player {
				mask.Set(index)
			}
			break
		}
	}
	return mask
}
