package layout

import (
	"strconv"
	"strings"

	"github.com/dpshade/srs-wizard/internal/models"
)

// BlockKind is how a field is laid out
type BlockKind int

const (
	// BlockInline puts the label and a short value on the same line
	BlockInline BlockKind = iota
	// BlockParagraph puts the label on its own line and wraps the text below it
	BlockParagraph
	// BlockBulletList puts the label on its own line and one bullet per entry below it
	BlockBulletList
)

// Block is one non-blank field of the record, ready to be laid out
type Block struct {
	Kind  BlockKind
	Label string
	Text  string
	Items []string
}

// Section is a numbered document section with its non-blank fields in document order
type Section struct {
	Number int
	Title  string
	Step   int
	Blocks []Block
}

// Heading is the numbered section title as printed
func (s Section) Heading() string {
	return strconv.Itoa(s.Number) + ". " + s.Title
}

type fieldRef struct {
	kind BlockKind
	text models.TextField
	list models.ListField
}

var documentFields = map[models.Section][]fieldRef{
	models.SectionProjectInfo: {
		{kind: BlockInline, text: models.FieldCompanyName},
		{kind: BlockInline, text: models.FieldProjectName},
		{kind: BlockInline, text: models.FieldVersion},
		{kind: BlockParagraph, text: models.FieldDescription},
		{kind: BlockParagraph, text: models.FieldStakeholders},
		{kind: BlockParagraph, text: models.FieldScope},
	},
	models.SectionFunctional: {
		{kind: BlockBulletList, list: models.ListUserStories},
		{kind: BlockBulletList, list: models.ListSystemFeatures},
		{kind: BlockBulletList, list: models.ListBusinessRules},
	},
	models.SectionNonFunctional: {
		{kind: BlockParagraph, text: models.FieldPerformance},
		{kind: BlockParagraph, text: models.FieldSecurity},
		{kind: BlockParagraph, text: models.FieldUsability},
		{kind: BlockParagraph, text: models.FieldReliability},
		{kind: BlockParagraph, text: models.FieldScalability},
	},
	models.SectionArchitecture: {
		{kind: BlockParagraph, text: models.FieldOverview},
		{kind: BlockBulletList, list: models.ListComponents},
		{kind: BlockParagraph, text: models.FieldDataFlow},
		{kind: BlockParagraph, text: models.FieldInterfaces},
	},
	models.SectionConstraints: {
		{kind: BlockBulletList, list: models.ListTechnical},
		{kind: BlockBulletList, list: models.ListBusiness},
		{kind: BlockBulletList, list: models.ListRegulatory},
	},
}

// Sections turns the record into the document outline. Blank fields are left out, blank list
// entries are dropped, and a section without any non-blank field is left out entirely. Numbers
// stay fixed at 1..5 regardless of what is skipped.
func Sections(r models.Record) []Section {
	var out []Section
	for _, s := range models.Sections() {
		section := Section{Number: int(s) + 1, Title: s.Title(), Step: s.Step()}
		for _, ref := range documentFields[s] {
			if block, ok := ref.block(&r); ok {
				section.Blocks = append(section.Blocks, block)
			}
		}
		if len(section.Blocks) > 0 {
			out = append(out, section)
		}
	}
	return out
}

func (ref fieldRef) block(r *models.Record) (Block, bool) {
	if ref.kind == BlockBulletList {
		items := models.NonBlank(r.List(ref.list))
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return Block{Kind: ref.kind, Label: ref.list.Label(), Items: items}, len(items) > 0
	}
	text := strings.TrimSpace(r.Text(ref.text))
	return Block{Kind: ref.kind, Label: ref.text.Label(), Text: text}, text != ""
}

// Field is one editable field of a section, in document order
type Field struct {
	IsList    bool
	Multiline bool
	Text      models.TextField
	List      models.ListField
}

// Fields lists the fields of a section in the order they are printed. Paragraph fields are
// multiline; inline fields and list entries are single line.
func Fields(s models.Section) []Field {
	var out []Field
	for _, ref := range documentFields[s] {
		out = append(out, Field{
			IsList:    ref.kind == BlockBulletList,
			Multiline: ref.kind == BlockParagraph,
			Text:      ref.text,
			List:      ref.list,
		})
	}
	return out
}
