package assembler

import (
	"strconv"
	"strings"
)

// parseUint parses a decimal, 0x-hex or 0b-binary unsigned literal.
// Underscores are digit separators and stripped before parsing.
func parseUint(token string) (uint64, error) {
	token = strings.ReplaceAll(token, "_", "")
	switch {
	case strings.HasPrefix(token, "0x"):
		return strconv.ParseUint(token[2:], 16, 64)
	case strings.HasPrefix(token, "0b"):
		return strconv.ParseUint(token[2:], 2, 64)
	default:
		return strconv.ParseUint(token, 10, 64)
	}
}

// parseInt is parseUint for signed literals.
func parseInt(token string) (int64, error) {
	token = strings.ReplaceAll(token, "_", "")
	switch {
	case strings.HasPrefix(token, "0x"):
		return strconv.ParseInt(token[2:], 16, 64)
	case strings.HasPrefix(token, "0b"):
		return strconv.ParseInt(token[2:], 2, 64)
	default:
		return strconv.ParseInt(token, 10, 64)
	}
}

func (a *Assembler) parseRegister(token string) (Register, *AssemblerError) {
	if !strings.HasPrefix(token, "r") {
		return 0, Errors.RegisterPrefix(token, a.line)
	}

	digits := token[1:]
	num, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, Errors.RegisterParse(digits, err, a.line)
	}
	if num >= RegisterCount {
		return 0, Errors.RegisterRange(digits, a.line)
	}
	return Register(num), nil
}

func (a *Assembler) parseImmediate(token string) (Immediate, *AssemblerError) {
	if strings.HasPrefix(token, "'") {
		if len(token) < 2 || !strings.HasSuffix(token, "'") {
			return 0, Errors.CharacterUnterminated(token, a.line)
		}

		content := []rune(token[1 : len(token)-1])
		if len(content) != 1 {
			return 0, Errors.CharacterLength(string(content), a.line)
		}

		for i, c := range Characters {
			if c == content[0] {
				return NewImmediate(i), nil
			}
		}
		return 0, Errors.CharacterUnsupported(content[0], a.line)
	}

	num, err := parseInt(token)
	if err != nil {
		return 0, Errors.ImmediateParse(token, err, a.line)
	}
	if num < ImmediateMin || num > ImmediateMax {
		return 0, Errors.ImmediateRange(token, a.line)
	}
	return NewImmediate(int(num)), nil
}

func (a *Assembler) parseOffset(token string) (Offset, *AssemblerError) {
	num, err := parseInt(token)
	if err != nil {
		return 0, Errors.OffsetParse(token, err, a.line)
	}
	if num < OffsetMin || num > OffsetMax {
		return 0, Errors.OffsetRange(token, a.line)
	}
	return Offset(num), nil
}

func (a *Assembler) parseCondition(token string) (Condition, *AssemblerError) {
	switch token {
	case "zero":
		return CondZero, nil
	case "notzero":
		return CondNotZero, nil
	case "carry":
		return CondCarry, nil
	case "notcarry":
		return CondNotCarry, nil
	}
	return 0, Errors.UnknownCondition(token, a.line)
}

func (a *Assembler) parseLocation(token string) (Location, *AssemblerError) {
	if strings.HasPrefix(token, "+") || strings.HasPrefix(token, "-") {
		magnitude, err := parseUint(token[1:])
		if err != nil {
			return Location{}, Errors.RelativeParse(token, err, a.line)
		}

		offset := int(magnitude)
		if token[0] == '-' {
			offset = -offset
		}
		return Location{Kind: LocationRelative, Offset: offset}, nil
	}

	if num, err := parseUint(token); err == nil {
		if num > MaxAddress {
			return Location{}, Errors.AddressRange(num, a.line)
		}
		return Location{Kind: LocationAddress, Address: uint16(num)}, nil
	}

	// Not numeric: a label name, resolved during encoding.
	return Location{Kind: LocationLabel, Label: token}, nil
}
