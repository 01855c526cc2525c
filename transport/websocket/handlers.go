package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleGameState(_ context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	snapshot := that.game.CurrentGame()

	if err := that.sendMessage(bufrw, msg.Action, Payload{Game: snapshot}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleGameClick(_ context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameClick")

	var payloadReq Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	if payloadReq.Cell == nil {
		log.Error("cell is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "cell is required")
	}

	snapshot, err := that.game.ClickCell(*payloadReq.Cell)
	if err != nil {
		log.Info("click rejected", "cell", *payloadReq.Cell, "error", err)

		// The client still gets the snapshot so it can redraw the board.
		if err = that.sendMessage(bufrw, msg.Action, Payload{Game: snapshot, Error: err.Error()}); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}

		return nil
	}

	if err = that.sendMessage(bufrw, msg.Action, Payload{Game: snapshot}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleGameRestart(_ context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRestart")

	snapshot := that.game.RestartGame()

	if err := that.sendMessage(bufrw, msg.Action, Payload{Game: snapshot}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game restarted by client")

	return nil
}

func (that *Server) handleGameHistory(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameHistory")

	var payloadReq Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	records, err := that.game.RecentMatches(ctx, payloadReq.Limit)
	if err != nil {
		log.Error("failed to get recent matches", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get recent matches")
	}

	if err = that.sendMessage(bufrw, msg.Action, Payload{Matches: records}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleGameStats(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameStats")

	totals, err := that.game.LifetimeStats(ctx)
	if err != nil {
		log.Error("failed to get stats", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get stats")
	}

	if err = that.sendMessage(bufrw, msg.Action, Payload{Stats: totals}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
