// ===========================================================================
//
// File Name:  xmlstream.go
//
// ===========================================================================

package kgcore

import (
	"encoding/xml"
	"fmt"
)

// NamedEntity is one decoded XML record surfaced by the MeSH or DrugBank
// streaming readers: a set of candidate surface strings pulled from that
// record's name/synonym/brand/term elements.
type NamedEntity struct {
	Names []string
}

// meshDescriptor mirrors the subset of a MeSH DescriptorRecord this
// pipeline reads: DescriptorName/String and every
// ConceptList/Concept/TermList/Term/String.
type meshDescriptor struct {
	XMLName        xml.Name `xml:"DescriptorRecord"`
	DescriptorName struct {
		String string `xml:"String"`
	} `xml:"DescriptorName"`
	ConceptList struct {
		Concept []struct {
			TermList struct {
				Term []struct {
					String string `xml:"String"`
				} `xml:"Term"`
			} `xml:"TermList"`
		} `xml:"Concept"`
	} `xml:"ConceptList"`
}

// StreamMeshDescriptors streams DescriptorRecord elements from a MeSH
// descriptor XML file one at a time via encoding/xml's token decoder, so
// memory does not scale with the total descriptor count held simultaneously.
func StreamMeshDescriptors(path string) (<-chan NamedEntity, func() error) {
	out := make(chan NamedEntity, 64)
	var finalErr error

	go func() {
		defer close(out)
		f, err := OpenAuto(path)
		if err != nil {
			finalErr = err
			return
		}
		defer f.Close()

		dec := xml.NewDecoder(f)
		for {
			tok, err := dec.Token()
			if err != nil {
				if err.Error() == "EOF" {
					return
				}
				finalErr = fmt.Errorf("reading %s: %w", path, err)
				return
			}
			start, ok := tok.(xml.StartElement)
			if !ok || start.Name.Local != "DescriptorRecord" {
				continue
			}
			var rec meshDescriptor
			if err := dec.DecodeElement(&rec, &start); err != nil {
				finalErr = fmt.Errorf("decoding DescriptorRecord in %s: %w", path, err)
				return
			}
			names := make([]string, 0, 4)
			if rec.DescriptorName.String != "" {
				names = append(names, rec.DescriptorName.String)
			}
			for _, concept := range rec.ConceptList.Concept {
				for _, term := range concept.TermList.Term {
					if term.String != "" {
						names = append(names, term.String)
					}
				}
			}
			out <- NamedEntity{Names: names}
		}
	}()

	return out, func() error { return finalErr }
}

// drugbankDrug mirrors the subset of a DrugBank <drug> element this
// pipeline reads: name, brands/brand, synonyms/synonym. The namespace
// http://www.drugbank.ca is honored via the root element's xmlns, which
// encoding/xml resolves automatically against the Name.Space match below.
type drugbankDrug struct {
	XMLName xml.Name `xml:"drug"`
	Name    string   `xml:"name"`
	Brands  struct {
		Brand []string `xml:"brand"`
	} `xml:"brands"`
	Synonyms struct {
		Synonym []string `xml:"synonym"`
	} `xml:"synonyms"`
}

const drugBankNamespace = "http://www.drugbank.ca"

// StreamDrugBankDrugs streams <drug> elements from a DrugBank export,
// honoring its explicit namespace, one drug at a time.
func StreamDrugBankDrugs(path string) (<-chan NamedEntity, func() error) {
	out := make(chan NamedEntity, 64)
	var finalErr error

	go func() {
		defer close(out)
		f, err := OpenAuto(path)
		if err != nil {
			finalErr = err
			return
		}
		defer f.Close()

		dec := xml.NewDecoder(f)
		for {
			tok, err := dec.Token()
			if err != nil {
				if err.Error() == "EOF" {
					return
				}
				finalErr = fmt.Errorf("reading %s: %w", path, err)
				return
			}
			start, ok := tok.(xml.StartElement)
			if !ok || start.Name.Local != "drug" || start.Name.Space != drugBankNamespace {
				continue
			}
			var rec drugbankDrug
			if err := dec.DecodeElement(&rec, &start); err != nil {
				finalErr = fmt.Errorf("decoding drug in %s: %w", path, err)
				return
			}
			names := make([]string, 0, 2+len(rec.Brands.Brand)+len(rec.Synonyms.Synonym))
			if rec.Name != "" {
				names = append(names, rec.Name)
			}
			names = append(names, rec.Brands.Brand...)
			names = append(names, rec.Synonyms.Synonym...)
			out <- NamedEntity{Names: names}
		}
	}()

	return out, func() error { return finalErr }
}
