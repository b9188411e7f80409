package assembler

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteBinary serializes words as raw big-endian 16-bit values.
func WriteBinary(w io.Writer, words []uint16) error {
	buf := make([]byte, 2)
	for _, word := range words {
		buf[0] = byte(word >> 8)
		buf[1] = byte(word)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// WriteText serializes words as 16 binary digits per line. There is no
// newline after the final word.
func WriteText(w io.Writer, words []uint16) error {
	for i, word := range words {
		if _, err := fmt.Fprintf(w, "%016b", word); err != nil {
			return err
		}
		if i < len(words)-1 {
			if _, err := w.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssembleToFile runs pass 2 and writes the image to path in the serialization
// selected by the config. Nothing is written when assembly fails.
func (a *Assembler) AssembleToFile(path string) ErrorList {
	words, errs := a.Assemble()
	if errs != nil {
		return errs
	}

	f, err := os.Create(path)
	if err != nil {
		return ErrorList{wrap(err)}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if a.Config.TextOutput {
		err = WriteText(w, words)
	} else {
		err = WriteBinary(w, words)
	}
	if err != nil {
		return ErrorList{wrap(err)}
	}

	if err := w.Flush(); err != nil {
		return ErrorList{wrap(err)}
	}
	return nil
}
