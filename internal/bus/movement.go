package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/battle"
	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// MoveResult is MovePlayer's reply: either a plain move, or a battle that
// just started (and, if immediately resolved, its outcome).
type MoveResult struct {
	Moved    *protocol.PlayerMoved
	Battle   *protocol.StartBattle
	Completed *protocol.BattleCompleted
}

// MovePlayer runs the MOVE_PLAYER command from spec.md §4.2: if the
// destination holds an undefeated monster, starts a battle instead of
// moving and consuming an action; otherwise updates position.
func (gb *GameBus) MovePlayer(playerID, turnID string, from, to geometry.FieldPlace, ignoreMonster, isBattleReturn bool) (MoveResult, error) {
	return submit(gb, func() (MoveResult, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return MoveResult{}, err
		}

		if !isBattleReturn && !ignoreMonster {
			if it, ok := gb.field.ItemAt(to); ok && it.GuardHP > 0 && !it.GuardDefeated {
				return gb.startBattle(playerID, from, to, it)
			}
		}

		res, err := gb.movement.Move(gb.field, playerID, to, isBattleReturn)
		if err != nil {
			return MoveResult{}, err
		}
		action := turn.Move
		if !isBattleReturn {
			if err := gb.turn.Record(action, "", nil, time.Now()); err != nil {
				return MoveResult{}, err
			}
		}
		evt := protocol.PlayerMoved{GameID: gb.gameID, PlayerID: playerID, From: res.From, To: res.To, IsBattleReturn: isBattleReturn}
		gb.emit(protocol.EventPlayerMoved, evt)
		gb.maybeHealAtFountain(playerID, isBattleReturn)
		if !isBattleReturn && gb.turn != nil && gb.turn.BudgetExhausted() {
			gb.endTurnInternal(playerID, time.Now())
		}
		return MoveResult{Moved: &evt}, nil
	})
}

// startBattle resolves combat immediately (spec.md §4.4 Resolve), pausing
// for FinalizeBattle only when consumables could change the outcome.
func (gb *GameBus) startBattle(playerID string, from, to geometry.FieldPlace, monster catalogdata.Item) (MoveResult, error) {
	p, err := gb.playerOrError(playerID)
	if err != nil {
		return MoveResult{}, err
	}
	startEvt := protocol.StartBattle{GameID: gb.gameID, PlayerID: playerID, Position: to, MonsterName: monster.Name, MonsterHP: monster.GuardHP}
	gb.emit(protocol.EventStartBattle, startEvt)

	battleID := gb.nextID()
	resolution := battle.Resolve(battleID, gb.rng, gb.field, &p.Inventory, monster.GuardHP)

	if resolution.NeedsConfirmation {
		gb.pending[battleID] = &pendingBattle{
			playerID: playerID, position: to, fromPosition: from,
			monsterName: monster.Name, monsterHP: monster.GuardHP, resolution: resolution,
		}
		evt := gb.completeBattleEvent(resolution, playerID, monster.Name, to)
		gb.emit(protocol.EventBattleCompleted, evt)
		return MoveResult{Battle: &startEvt, Completed: &evt}, nil
	}

	completed := gb.finishBattle(playerID, to, from, monster.Name, resolution)
	return MoveResult{Battle: &startEvt, Completed: &completed}, nil
}

// finishBattle applies a resolved (non-pending) battle outcome to
// Field/Movement/Player, per spec.md §4.4 Finalize. A DRAW or LOSE steps
// the player back and ends the turn; a WIN leaves the turn open.
func (gb *GameBus) finishBattle(playerID string, position, fromPosition geometry.FieldPlace, monsterName string, resolution battle.Resolution) protocol.BattleCompleted {
	evt := gb.completeBattleEvent(resolution, playerID, monsterName, position)

	if resolution.Result == battle.Win {
		gb.movement.ResetPosition(playerID, position)
		defeated, ok := gb.field.ResolveBattleWin(position)
		if ok && defeated.Type == catalogdata.ItemChest {
			gb.field.AutoCollectChest(position)
			if p, err := gb.playerOrError(playerID); err == nil {
				_, _ = p.Inventory.AddItem(defeated)
			}
		}
		gb.emit(protocol.EventMonsterDefeated, protocol.MonsterDefeated{GameID: gb.gameID, Position: position, MonsterName: monsterName})
	} else {
		gb.field.ResolveBattlePotentialReward(position)
	}

	gb.emit(protocol.EventBattleCompleted, evt)
	gb.movement.LockAfterBattle(playerID)

	if err := gb.turn.Record(turn.FightMonster, "", nil, time.Now()); err != nil {
		gb.logger.Warnw("could not record FIGHT_MONSTER action", "error", err)
	}

	if resolution.Result != battle.Win {
		if p, err := gb.playerOrError(playerID); err == nil {
			battle.ApplyLossDamage(p)
		}
		gb.movement.ResetPosition(playerID, position)
		if _, err := gb.movement.Move(gb.field, playerID, fromPosition, true); err == nil {
			gb.emit(protocol.EventPlayerMoved, protocol.PlayerMoved{GameID: gb.gameID, PlayerID: playerID, From: position, To: fromPosition, IsBattleReturn: true})
			gb.maybeHealAtFountain(playerID, true)
		} else {
			gb.logger.Errorw("battle-return step-back failed; player stays on the battle tile", "player_id", playerID, "error", err)
		}
		gb.endTurnInternal(playerID, time.Now())
	}
	return evt
}

func (gb *GameBus) completeBattleEvent(resolution battle.Resolution, playerID, monsterName string, position geometry.FieldPlace) protocol.BattleCompleted {
	return protocol.BattleCompleted{
		GameID:               gb.gameID,
		BattleID:             resolution.BattleID,
		PlayerID:             playerID,
		Position:             position,
		MonsterType:          monsterName,
		Dice:                 resolution.Dice,
		TotalDamage:          resolution.TotalDamage,
		Result:               string(resolution.Result),
		AvailableConsumables: resolution.AvailableConsumables,
		NeedsConfirmation:    resolution.NeedsConfirmation,
	}
}

// maybeHealAtFountain implements spec.md §4.3 "Healing" for the
// PlayerMoved{isBattleReturn=true}-onto-a-fountain case.
func (gb *GameBus) maybeHealAtFountain(playerID string, isBattleReturn bool) {
	if !isBattleReturn {
		return
	}
	gb.healAtFountainIfNeeded(playerID)
}

// healAtFountainIfNeeded heals playerID to max and emits
// PlayerHealedAtFountain if they're standing on a healing fountain and
// carrying damage; reports whether it healed them.
func (gb *GameBus) healAtFountainIfNeeded(playerID string) bool {
	pos := gb.movement.PositionOf(playerID)
	if !gb.field.IsHealingFountain(pos) {
		return false
	}
	p, err := gb.playerOrError(playerID)
	if err != nil || !p.NeedsHealing() {
		return false
	}
	p.HealToMax()
	gb.emit(protocol.EventPlayerHealedAtFountain, protocol.PlayerHealedAtFountain{GameID: gb.gameID, PlayerID: playerID})
	return true
}
