package suins

import (
	"fmt"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/ptb"
)

// BuildRecordUpdate assembles the set_user_data call. Arguments, in order:
// controller (shared, mutable), domain object, record key, value, system
// state (shared, read-only). The contract aborts on any other order.
func BuildRecordUpdate(cfg ChainConfig, objectID, value string) (*ptb.Transaction, error) {
	if objectID == "" {
		return nil, ErrMissingObjectID
	}

	tx := ptb.New()
	controller := tx.SharedObject(cfg.Controller.ObjectID, cfg.Controller.InitialVersion, cfg.Controller.Mutable)
	domain := tx.Object(objectID)
	key := tx.PureString(cfg.RecordKey)
	val := tx.PureString(value)
	system := tx.SharedObject(cfg.SystemState.ObjectID, cfg.SystemState.InitialVersion, cfg.SystemState.Mutable)

	if err := tx.MoveCall(cfg.Target(), nil, controller, domain, key, val, system); err != nil {
		return nil, fmt.Errorf("build record update: %w", err)
	}
	return tx, nil
}
