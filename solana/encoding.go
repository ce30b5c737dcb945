package solana

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana/shortvec"
)

// Marshal encodes the message: a 3-byte header, a compact-array of account
// keys, the blockhash, then a compact-array of compiled instructions, each
// itself program_index || compact_array(account_indices) || compact_array(data).
func (m Message) Marshal() []byte {
	b := &bytes.Buffer{}

	b.WriteByte(m.Header.NumSignatures)
	b.WriteByte(m.Header.NumReadonlySigned)
	b.WriteByte(m.Header.NumReadonly)

	_, _ = shortvec.EncodeLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		b.Write(a)
	}

	b.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(b, len(m.Instructions))
	for _, ix := range m.Instructions {
		b.WriteByte(ix.ProgramIndex)

		_, _ = shortvec.EncodeLen(b, len(ix.Accounts))
		b.Write(ix.Accounts)

		_, _ = shortvec.EncodeLen(b, len(ix.Data))
		b.Write(ix.Data)
	}

	return b.Bytes()
}

// Unmarshal decodes a message from b. Any truncation, inconsistent
// account-index reference, or malformed compact-u16 prefix returns
// ErrParse; no partial Message is observable on error.
func (m *Message) Unmarshal(b []byte) error {
	var out Message
	if err := out.unmarshal(b); err != nil {
		return err
	}
	*m = out
	return nil
}

func (m *Message) unmarshal(b []byte) error {
	buf := bytes.NewBuffer(b)

	var err error
	if m.Header.NumSignatures, err = buf.ReadByte(); err != nil {
		return wrapParse(err, "header")
	}
	if m.Header.NumReadonlySigned, err = buf.ReadByte(); err != nil {
		return wrapParse(err, "header")
	}
	if m.Header.NumReadonly, err = buf.ReadByte(); err != nil {
		return wrapParse(err, "header")
	}

	accountLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return wrapParse(err, "account table length")
	}
	m.Accounts = make([]Key, accountLen)
	for i := 0; i < accountLen; i++ {
		m.Accounts[i] = make([]byte, KeySize)
		if _, err := io.ReadFull(buf, m.Accounts[i]); err != nil {
			return wrapParse(err, "account table")
		}
	}

	if _, err := io.ReadFull(buf, m.RecentBlockhash[:]); err != nil {
		return wrapParse(err, "blockhash")
	}

	instructionLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return wrapParse(err, "instruction table length")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := 0; i < instructionLen; i++ {
		var ci CompiledInstruction

		if ci.ProgramIndex, err = buf.ReadByte(); err != nil {
			return wrapParse(err, "instruction program index")
		}
		if int(ci.ProgramIndex) >= len(m.Accounts) {
			return ErrParse
		}

		accLen, err := shortvec.DecodeLen(buf)
		if err != nil {
			return wrapParse(err, "instruction account length")
		}
		ci.Accounts = make([]byte, accLen)
		if _, err := io.ReadFull(buf, ci.Accounts); err != nil {
			return wrapParse(err, "instruction accounts")
		}
		for _, idx := range ci.Accounts {
			if int(idx) >= len(m.Accounts) {
				return ErrParse
			}
		}

		dataLen, err := shortvec.DecodeLen(buf)
		if err != nil {
			return wrapParse(err, "instruction data length")
		}
		ci.Data = make([]byte, dataLen)
		if _, err := io.ReadFull(buf, ci.Data); err != nil {
			return wrapParse(err, "instruction data")
		}

		m.Instructions[i] = ci
	}

	return nil
}

// Marshal encodes the transaction: a compact-array of signatures followed
// by the marshaled message.
func (t Transaction) Marshal() []byte {
	b := &bytes.Buffer{}

	_, _ = shortvec.EncodeLen(b, len(t.Signatures))
	for _, s := range t.Signatures {
		b.Write(s[:])
	}

	b.Write(t.Message.Marshal())

	return b.Bytes()
}

// Unmarshal decodes a transaction from b.
func (t *Transaction) Unmarshal(b []byte) error {
	buf := bytes.NewBuffer(b)

	sigLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return wrapParse(err, "signature table length")
	}

	t.Signatures = make([]Signature, sigLen)
	for i := 0; i < sigLen; i++ {
		if _, err := io.ReadFull(buf, t.Signatures[i][:]); err != nil {
			return wrapParse(err, "signature")
		}
	}

	return (&t.Message).Unmarshal(buf.Bytes())
}

func wrapParse(err error, what string) error {
	return errors.Wrapf(ErrParse, "%s: %v", what, err)
}
