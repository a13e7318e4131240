package understat

import (
	"bytes"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// Scalar accepts a JSON string, number, boolean, or null and retains the
// textual form. Understat serializes most numeric stats as strings but is
// not consistent about it across seasons.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var decoded string
		if err := sonic.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("decode scalar string: %w", err)
		}
		*s = Scalar(decoded)
		return nil
	}
	*s = Scalar(data)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

type rawPlayer struct {
	ID          Scalar `json:"id"`
	PlayerName  Scalar `json:"player_name"`
	Games       Scalar `json:"games"`
	Time        Scalar `json:"time"`
	Goals       Scalar `json:"goals"`
	Assists     Scalar `json:"assists"`
	Shots       Scalar `json:"shots"`
	KeyPasses   Scalar `json:"key_passes"`
	YellowCards Scalar `json:"yellow_cards"`
	RedCards    Scalar `json:"red_cards"`
	Position    Scalar `json:"position"`
	TeamTitle   Scalar `json:"team_title"`
	XG          Scalar `json:"xG"`
	XA          Scalar `json:"xA"`
}

// decodeJSEscapes resolves the escape forms found inside the inlined
// JSON.parse('...') literal: \xNN, \uNNNN, and single-character escapes.
func decodeJSEscapes(in string) ([]byte, error) {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		ch := in[i]
		if ch != '\\' {
			out = append(out, ch)
			continue
		}
		if i+1 >= len(in) {
			return nil, fmt.Errorf("dangling escape at offset %d", i)
		}
		i++
		switch in[i] {
		case 'x':
			if i+2 >= len(in) {
				return nil, fmt.Errorf("truncated \\x escape at offset %d", i)
			}
			v, err := strconv.ParseUint(in[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid \\x escape at offset %d: %w", i, err)
			}
			out = append(out, byte(v))
			i += 2
		case 'u':
			if i+4 >= len(in) {
				return nil, fmt.Errorf("truncated \\u escape at offset %d", i)
			}
			v, err := strconv.ParseUint(in[i+1:i+5], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid \\u escape at offset %d: %w", i, err)
			}
			out = append(out, []byte(string(rune(v)))...)
			i += 4
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			out = append(out, in[i])
		}
	}
	return out, nil
}
