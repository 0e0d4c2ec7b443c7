package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// PickTile runs the PICK_TILE command: draws the next deck tile
// pre-rotated toward requiredOpenSide and records the turn action.
func (gb *GameBus) PickTile(playerID, turnID string, requiredOpenSide geometry.Side) (protocol.TilePicked, error) {
	return submit(gb, func() (protocol.TilePicked, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.TilePicked{}, err
		}
		picked, err := gb.field.PickTile(requiredOpenSide)
		if err != nil {
			return protocol.TilePicked{}, err
		}
		if err := gb.turn.Record(turn.PickTile, picked.TileID, nil, time.Now()); err != nil {
			return protocol.TilePicked{}, err
		}
		evt := protocol.TilePicked{GameID: gb.gameID, TileID: picked.TileID, Tile: protocol.NewTileWire(picked)}
		gb.emit(protocol.EventTilePicked, evt)
		return evt, nil
	})
}

// RotateTile runs the ROTATE_TILE command against the currently unplaced
// tile.
func (gb *GameBus) RotateTile(playerID, turnID string, topSide, requiredOpenSide geometry.Side) (protocol.TileRotated, error) {
	return submit(gb, func() (protocol.TileRotated, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.TileRotated{}, err
		}
		orientation, err := gb.field.RotateTile(topSide, requiredOpenSide)
		if err != nil {
			return protocol.TileRotated{}, err
		}
		unplaced := gb.field.UnplacedTile()
		tileID := ""
		wire := protocol.TileWire{}
		if unplaced != nil {
			tileID = unplaced.TileID
			wire = protocol.NewTileWireParts(unplaced.TileID, orientation, unplaced.Room, unplaced.Features)
		}
		if err := gb.turn.Record(turn.RotateTile, tileID, nil, time.Now()); err != nil {
			return protocol.TileRotated{}, err
		}
		evt := protocol.TileRotated{GameID: gb.gameID, TileID: tileID, Tile: wire}
		gb.emit(protocol.EventTileRotated, evt)
		return evt, nil
	})
}

// PlaceTile runs the PLACE_TILE command, commits the unplaced tile,
// and draws a field item if the tile is a room.
func (gb *GameBus) PlaceTile(playerID, turnID, tileID string, target geometry.FieldPlace) (protocol.TilePlaced, error) {
	return submit(gb, func() (protocol.TilePlaced, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.TilePlaced{}, err
		}
		playerPos := gb.movement.PositionOf(playerID)
		placed, err := gb.field.PlaceTile(target, playerPos)
		if err != nil {
			return protocol.TilePlaced{}, err
		}
		if placed.Room {
			if _, err := gb.field.DrawItemForRoom(target); err != nil {
				gb.logger.Infow("bag exhausted while placing a room tile", "tile_id", tileID, "error", err)
			}
		}
		if err := gb.turn.Record(turn.PlaceTile, placed.TileID, nil, time.Now()); err != nil {
			return protocol.TilePlaced{}, err
		}
		evt := protocol.TilePlaced{GameID: gb.gameID, TileID: placed.TileID, FieldPlace: target, Tile: protocol.NewTileWire(placed)}
		gb.emit(protocol.EventTilePlaced, evt)
		return evt, nil
	})
}
