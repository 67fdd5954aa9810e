package morsetree

import "unicode"

// morseTable maps upper-case letters and digits to International Morse.
var morseTable = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",
}

// MorseCode returns the dot/dash string for ch, folding case. The second
// result is false for characters without a mapping, including space.
func MorseCode(ch rune) (string, bool) {
	code, ok := morseTable[unicode.ToUpper(ch)]
	return code, ok
}

// EncodeRune returns the growth symbols for one typed character and the text
// it contributes to the typed-text record. A space encodes as two bars (a
// word separator); a mapped character encodes as its Morse code followed by
// one bar. ok is false for characters that produce no growth.
func EncodeRune(ch rune) (syms []Symbol, text rune, ok bool) {
	if ch == ' ' {
		return []Symbol{SymbolBar, SymbolBar}, ' ', true
	}
	upper := unicode.ToUpper(ch)
	code, found := morseTable[upper]
	if !found {
		return nil, 0, false
	}
	syms = make([]Symbol, 0, len(code)+1)
	for i := 0; i < len(code); i++ {
		syms = append(syms, Symbol(code[i]))
	}
	return append(syms, SymbolBar), upper, true
}
