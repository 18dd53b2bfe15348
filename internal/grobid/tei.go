package grobid

import (
	"encoding/xml"
	"strings"
)

// TEI models the slice of a GROBID TEI header response that carries
// bibliographic metadata. Every substructure is optional; decoding
// tolerates whatever the service leaves out.
type TEI struct {
	XMLName xml.Name  `xml:"TEI"`
	Header  teiHeader `xml:"teiHeader"`
}

type teiHeader struct {
	FileDesc    teiFileDesc    `xml:"fileDesc"`
	ProfileDesc teiProfileDesc `xml:"profileDesc"`
}

type teiFileDesc struct {
	TitleStmt       teiTitleStmt       `xml:"titleStmt"`
	PublicationStmt teiPublicationStmt `xml:"publicationStmt"`
	SourceDesc      teiSourceDesc      `xml:"sourceDesc"`
}

type teiTitleStmt struct {
	Titles  []teiTitle  `xml:"title"`
	Authors []teiAuthor `xml:"author"`
}

type teiPublicationStmt struct {
	Publisher string    `xml:"publisher"`
	Dates     []teiDate `xml:"date"`
}

type teiSourceDesc struct {
	BiblStruct teiBiblStruct `xml:"biblStruct"`
}

type teiBiblStruct struct {
	Type     string      `xml:"type,attr"`
	Analytic teiAnalytic `xml:"analytic"`
	Monogr   teiMonogr   `xml:"monogr"`
}

type teiAnalytic struct {
	Titles  []teiTitle  `xml:"title"`
	Authors []teiAuthor `xml:"author"`
}

type teiMonogr struct {
	Titles  []teiTitle `xml:"title"`
	Imprint teiImprint `xml:"imprint"`
}

type teiImprint struct {
	Publisher string    `xml:"publisher"`
	Dates     []teiDate `xml:"date"`
}

type teiTitle struct {
	Level string `xml:"level,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type teiDate struct {
	Type  string `xml:"type,attr"`
	When  string `xml:"when,attr"`
	Value string `xml:",chardata"`
}

type teiAuthor struct {
	PersName     teiPersName      `xml:"persName"`
	Affiliations []teiAffiliation `xml:"affiliation"`
}

type teiPersName struct {
	Forenames []string `xml:"forename"`
	Surname   string   `xml:"surname"`
}

type teiAffiliation struct {
	OrgNames []string   `xml:"orgName"`
	Address  teiAddress `xml:"address"`
}

// teiAddress splits the address subtree into the components GROBID
// emits. The country element doubles as the source of the countries
// field.
type teiAddress struct {
	AddrLines  []string `xml:"addrLine"`
	Settlement string   `xml:"settlement"`
	Region     string   `xml:"region"`
	PostCode   string   `xml:"postCode"`
	Countries  []string `xml:"country"`
}

type teiProfileDesc struct {
	TextClass teiTextClass `xml:"textClass"`
	Abstract  teiAbstract  `xml:"abstract"`
}

// teiAbstract concatenates the character data of the whole abstract
// subtree. GROBID nests the text in div/p elements, which a plain
// string field would skip.
type teiAbstract struct {
	Text string
}

func (a *teiAbstract) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
			// Element boundaries often carry no whitespace of their
			// own; the mapper collapses any excess.
			sb.WriteByte(' ')
		}
	}
	a.Text = sb.String()
	return nil
}

type teiTextClass struct {
	Keywords   teiKeywords `xml:"keywords"`
	ClassCodes []string    `xml:"classCode"`
}

type teiKeywords struct {
	Terms []string `xml:"term"`
}

// ParseTEI decodes a TEI XML document.
func ParseTEI(data []byte) (*TEI, error) {
	var tei TEI
	if err := xml.Unmarshal(data, &tei); err != nil {
		return nil, err
	}
	return &tei, nil
}
