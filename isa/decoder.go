package isa

import (
	"strconv"
	"strings"
)

// TargetMode controls how a BEQ's third operand is interpreted, resolving
// spec.md §9 Open Question 1: whether "target" is a byte offset (divided
// by 4 to get an instruction index) or already an instruction index.
type TargetMode uint8

const (
	// TargetAuto divides by 4 when the literal is a multiple of 4, and
	// otherwise treats it as an instruction index directly. This is the
	// default and matches the convention spec.md documents as observed
	// in the source ("12 refers to i_3").
	TargetAuto TargetMode = iota
	// TargetDirect always treats the literal as an instruction index.
	TargetDirect
	// TargetByteOffset always divides the literal by 4.
	TargetByteOffset
)

// Resolve converts a raw BEQ literal into an absolute instruction index.
func (m TargetMode) Resolve(raw int) int {
	switch m {
	case TargetDirect:
		return raw
	case TargetByteOffset:
		return raw / 4
	default: // TargetAuto
		if raw%4 == 0 {
			return raw / 4
		}
		return raw
	}
}

// Decoder turns validated assembly text into an Instruction list.
type Decoder struct {
	targetMode TargetMode
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithTargetMode overrides the BEQ target convention (default TargetAuto).
func WithTargetMode(mode TargetMode) DecoderOption {
	return func(d *Decoder) {
		d.targetMode = mode
	}
}

// NewDecoder creates a Decoder with the default BEQ target convention.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{targetMode: TargetAuto}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses a whitespace/comma-delimited MIPS-like program (spec.md §6)
// into an ordered Instruction list. Blank lines and lines starting with "#"
// are ignored, matching the original Tkinter tool's parser. The returned
// index is the position among non-skipped lines, i.e. the program's
// instruction count, not the source line count.
func (d *Decoder) Decode(lines []string) ([]Instruction, error) {
	program := make([]Instruction, 0, len(lines))

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inst, err := d.decodeLine(strings.ToUpper(line), len(program), lineNo+1)
		if err != nil {
			return nil, err
		}
		program = append(program, inst)
	}

	return program, nil
}

func (d *Decoder) decodeLine(line string, index, lineNo int) (Instruction, error) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return Instruction{}, &ParseError{Line: lineNo, Reason: "empty instruction"}
	}

	inst := Instruction{Index: index, Dest: NoRegister, Src1: NoRegister, Src2: NoRegister}

	switch tokens[0] {
	case "ADD", "SUB", "MUL", "DIV":
		if len(tokens) != 4 {
			return Instruction{}, &ParseError{Line: lineNo, Reason: "expected " + tokens[0] + " Rd, Rs, Rt"}
		}
		inst.Op = arithmeticOp(tokens[0])
		var err error
		if inst.Dest, err = parseRegister(tokens[1]); err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		if inst.Src1, err = parseRegister(tokens[2]); err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		if inst.Src2, err = parseRegister(tokens[3]); err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}

	case "LW", "SW":
		if len(tokens) != 3 {
			return Instruction{}, &ParseError{Line: lineNo, Reason: "expected " + tokens[0] + " Rt, offset(Rs)"}
		}
		reg, err := parseRegister(tokens[1])
		if err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		offset, base, err := parseOffsetBase(tokens[2])
		if err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		inst.Src1 = base
		inst.Immediate = offset
		if tokens[0] == "LW" {
			inst.Op = OpLW
			inst.Dest = reg
		} else {
			inst.Op = OpSW
			inst.Src2 = reg
		}

	case "BEQ":
		if len(tokens) != 4 {
			return Instruction{}, &ParseError{Line: lineNo, Reason: "expected BEQ Rs, Rt, target"}
		}
		inst.Op = OpBEQ
		var err error
		if inst.Src1, err = parseRegister(tokens[1]); err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		if inst.Src2, err = parseRegister(tokens[2]); err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		raw, err := strconv.Atoi(tokens[3])
		if err != nil {
			return Instruction{}, &ParseError{Line: lineNo, Reason: "invalid BEQ target: " + tokens[3]}
		}
		inst.Immediate = d.targetMode.Resolve(raw)

	default:
		return Instruction{}, &ParseError{Line: lineNo, Reason: "unrecognized opcode: " + tokens[0]}
	}

	return inst, nil
}

func arithmeticOp(mnemonic string) Op {
	switch mnemonic {
	case "ADD":
		return OpADD
	case "SUB":
		return OpSUB
	case "MUL":
		return OpMUL
	default:
		return OpDIV
	}
}

// tokenize splits on whitespace and commas, which double as token
// separators per spec.md §6.
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}

// parseRegister accepts R0..R31 or F0..F31, sharing one 32-entry namespace.
func parseRegister(tok string) (int, error) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'F') {
		return 0, &ParseError{Reason: "invalid register: " + tok}
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n >= NumRegisters {
		return 0, &ParseError{Reason: "invalid register: " + tok}
	}
	return n, nil
}

// parseOffsetBase parses the "offset(Rs)" operand used by LW/SW.
func parseOffsetBase(tok string) (offset, base int, err error) {
	open := strings.IndexByte(tok, '(')
	close := strings.IndexByte(tok, ')')
	if open < 0 || close < open {
		return 0, 0, &ParseError{Reason: "invalid memory operand: " + tok}
	}

	offset, convErr := strconv.Atoi(tok[:open])
	if convErr != nil {
		return 0, 0, &ParseError{Reason: "invalid offset: " + tok[:open]}
	}

	base, regErr := parseRegister(tok[open+1 : close])
	if regErr != nil {
		return 0, 0, regErr
	}

	return offset, base, nil
}
