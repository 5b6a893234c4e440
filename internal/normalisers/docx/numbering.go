package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type valAttr struct {
	Val string `xml:"val,attr"`
}

type numberingXML struct {
	AbstractNums []struct {
		ID     string `xml:"abstractNumId,attr"`
		Levels []struct {
			Ilvl    int     `xml:"ilvl,attr"`
			Start   valAttr `xml:"start"`
			NumFmt  valAttr `xml:"numFmt"`
			LvlText valAttr `xml:"lvlText"`
		} `xml:"lvl"`
	} `xml:"abstractNum"`
	Nums []struct {
		ID            string  `xml:"numId,attr"`
		AbstractNumID valAttr `xml:"abstractNumId"`
	} `xml:"num"`
}

// levelDef is one list level of word/numbering.xml.
type levelDef struct {
	start  int
	format string
	text   string
}

// numbering renders automatic list labels in document order.
type numbering struct {
	levels   map[string][]levelDef
	counters map[string][]int
}

func parseNumbering(data []byte) *numbering {
	var doc numberingXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	abstract := make(map[string][]levelDef, len(doc.AbstractNums))
	for _, an := range doc.AbstractNums {
		var defs []levelDef
		for _, lvl := range an.Levels {
			if lvl.Ilvl < 0 || lvl.Ilvl > 8 {
				continue
			}
			for len(defs) <= lvl.Ilvl {
				defs = append(defs, levelDef{start: 1, format: "decimal"})
			}
			def := levelDef{start: 1, format: lvl.NumFmt.Val, text: lvl.LvlText.Val}
			if n, err := strconv.Atoi(lvl.Start.Val); err == nil {
				def.start = n
			}
			defs[lvl.Ilvl] = def
		}
		abstract[an.ID] = defs
	}

	n := &numbering{
		levels:   make(map[string][]levelDef, len(doc.Nums)),
		counters: make(map[string][]int, len(doc.Nums)),
	}
	for _, num := range doc.Nums {
		if defs, ok := abstract[num.AbstractNumID.Val]; ok {
			n.levels[num.ID] = defs
		}
	}
	return n
}

// next advances the counter of (numID, ilvl) and returns the rendered
// label followed by a space. Deeper levels restart. Bullets and unknown
// lists render as "".
func (n *numbering) next(numID string, ilvl int) string {
	defs, ok := n.levels[numID]
	if !ok || ilvl < 0 || ilvl >= len(defs) {
		return ""
	}

	counters, ok := n.counters[numID]
	if !ok {
		counters = make([]int, len(defs))
		for i, d := range defs {
			counters[i] = d.start - 1
		}
		n.counters[numID] = counters
	}
	counters[ilvl]++
	for j := ilvl + 1; j < len(defs); j++ {
		counters[j] = defs[j].start - 1
	}

	def := defs[ilvl]
	if def.format == "bullet" || def.format == "none" || def.text == "" {
		return ""
	}

	label := def.text
	for k := len(defs); k >= 1; k-- {
		placeholder := "%" + strconv.Itoa(k)
		if strings.Contains(label, placeholder) {
			label = strings.ReplaceAll(label, placeholder, formatCounter(counters[k-1], defs[k-1].format))
		}
	}
	return label + " "
}

func formatCounter(n int, format string) string {
	switch format {
	case "lowerLetter":
		return letter(n, 'a')
	case "upperLetter":
		return letter(n, 'A')
	case "lowerRoman":
		return strings.ToLower(roman(n))
	case "upperRoman":
		return roman(n)
	default:
		return strconv.Itoa(n)
	}
}

// letter renders 1..26 as a..z and repeats past z ("aa", "bb"), as Word does.
func letter(n int, base rune) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	r := string(base + rune((n-1)%26))
	return strings.Repeat(r, (n-1)/26+1)
}

func roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}
