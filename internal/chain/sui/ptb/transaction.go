// Package ptb models the subset of Sui programmable transactions needed to
// issue a single Move call. The JSON form mirrors the serialized transaction
// (version 2) accepted by wallet signers.
package ptb

import (
	"errors"
	"fmt"
	"strings"
)

const SerializedVersion = 2

type Transaction struct {
	Version  int       `json:"version"`
	Sender   string    `json:"sender,omitempty"`
	Inputs   []CallArg `json:"inputs"`
	Commands []Command `json:"commands"`
}

// CallArg is a transaction input. Exactly one field is set.
type CallArg struct {
	Object           *ObjectArg        `json:"Object,omitempty"`
	UnresolvedObject *UnresolvedObject `json:"UnresolvedObject,omitempty"`
	Pure             *PureArg          `json:"Pure,omitempty"`
}

type ObjectArg struct {
	SharedObject *SharedObjectRef `json:"SharedObject,omitempty"`
}

type SharedObjectRef struct {
	ObjectID             string `json:"objectId"`
	InitialSharedVersion uint64 `json:"initialSharedVersion,string"`
	Mutable              bool   `json:"mutable"`
}

// UnresolvedObject is an owned object referenced by id only; the signer
// fills in version and digest before signing.
type UnresolvedObject struct {
	ObjectID string `json:"objectId"`
}

type PureArg struct {
	Bytes []byte `json:"bytes"`
}

type Command struct {
	MoveCall *MoveCall `json:"MoveCall,omitempty"`
}

type MoveCall struct {
	Package       string     `json:"package"`
	Module        string     `json:"module"`
	Function      string     `json:"function"`
	TypeArguments []string   `json:"typeArguments"`
	Arguments     []Argument `json:"arguments"`
}

type Argument struct {
	Input *uint16 `json:"Input,omitempty"`
}

// Target returns the call target in "<package>::<module>::<function>" form.
func (m *MoveCall) Target() string {
	return m.Package + "::" + m.Module + "::" + m.Function
}

type Target struct {
	Package  string
	Module   string
	Function string
}

func (t Target) String() string {
	return t.Package + "::" + t.Module + "::" + t.Function
}

// ParseTarget splits "<package>::<module>::<function>".
func ParseTarget(s string) (Target, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return Target{}, fmt.Errorf("parse target %q: want <package>::<module>::<function>", s)
	}
	for _, p := range parts {
		if p == "" {
			return Target{}, fmt.Errorf("parse target %q: empty segment", s)
		}
	}
	pkg, err := NormalizeObjectID(parts[0])
	if err != nil {
		return Target{}, fmt.Errorf("parse target %q: %w", s, err)
	}
	return Target{Package: pkg, Module: parts[1], Function: parts[2]}, nil
}

func New() *Transaction {
	return &Transaction{
		Version:  SerializedVersion,
		Inputs:   []CallArg{},
		Commands: []Command{},
	}
}

func (t *Transaction) addInput(arg CallArg) Argument {
	idx := uint16(len(t.Inputs))
	t.Inputs = append(t.Inputs, arg)
	return Argument{Input: &idx}
}

func (t *Transaction) SharedObject(objectID string, initialVersion uint64, mutable bool) Argument {
	return t.addInput(CallArg{Object: &ObjectArg{SharedObject: &SharedObjectRef{
		ObjectID:             objectID,
		InitialSharedVersion: initialVersion,
		Mutable:              mutable,
	}}})
}

func (t *Transaction) Object(objectID string) Argument {
	return t.addInput(CallArg{UnresolvedObject: &UnresolvedObject{ObjectID: objectID}})
}

func (t *Transaction) PureString(s string) Argument {
	return t.addInput(CallArg{Pure: &PureArg{Bytes: EncodeString(s)}})
}

// MoveCall appends a call command. Every argument must refer to an existing input.
func (t *Transaction) MoveCall(target Target, typeArgs []string, args ...Argument) error {
	for i, a := range args {
		if a.Input == nil || int(*a.Input) >= len(t.Inputs) {
			return fmt.Errorf("move call %s: argument %d does not reference an input", target, i)
		}
	}
	if typeArgs == nil {
		typeArgs = []string{}
	}
	t.Commands = append(t.Commands, Command{MoveCall: &MoveCall{
		Package:       target.Package,
		Module:        target.Module,
		Function:      target.Function,
		TypeArguments: typeArgs,
		Arguments:     append([]Argument(nil), args...),
	}})
	return nil
}

// CallInputs resolves the arguments of command i to their inputs, in order.
func (t *Transaction) CallInputs(i int) ([]CallArg, error) {
	if i < 0 || i >= len(t.Commands) {
		return nil, fmt.Errorf("command %d out of range", i)
	}
	call := t.Commands[i].MoveCall
	if call == nil {
		return nil, fmt.Errorf("command %d is not a move call", i)
	}
	out := make([]CallArg, 0, len(call.Arguments))
	for j, a := range call.Arguments {
		if a.Input == nil || int(*a.Input) >= len(t.Inputs) {
			return nil, fmt.Errorf("command %d argument %d: dangling input", i, j)
		}
		out = append(out, t.Inputs[*a.Input])
	}
	return out, nil
}

var errNotPure = errors.New("not a pure argument")

// ObjectID returns the referenced object id, or "" for pure inputs.
func (a CallArg) ObjectID() string {
	switch {
	case a.Object != nil && a.Object.SharedObject != nil:
		return a.Object.SharedObject.ObjectID
	case a.UnresolvedObject != nil:
		return a.UnresolvedObject.ObjectID
	}
	return ""
}

func (a CallArg) PureString() (string, error) {
	if a.Pure == nil {
		return "", errNotPure
	}
	return DecodeString(a.Pure.Bytes)
}
