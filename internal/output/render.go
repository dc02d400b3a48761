// Package output composes the packed document in plain or XML style and writes it to disk.
package output

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/temirov/repopack/internal/config"
	"github.com/temirov/repopack/internal/types"
	"github.com/temirov/repopack/internal/utils"
)

const (
	sectionRule = "================================================================"

	bannerTitle          = utils.ApplicationName + " Output File"
	headerSectionTitle   = "User Provided Header"
	summarySectionTitle  = "File Summary"
	treeSectionTitle     = "Repository Structure"
	filesSectionTitle    = "Repository Files"
	generatedAtLabel     = "This file was generated by " + utils.ApplicationName + " on: "
	repositoryLabel      = "Repository: "
	totalFilesLabel      = "Total files: "
	totalCharactersLabel = "Total characters: "
	purposeTitle         = "Purpose:"
	notesTitle           = "Notes:"
	titleUnderline       = "--------"
	fileDelimiterFormat  = "--- %s ---"

	purposeText = "This file contains a packed representation of the entire repository's contents.\n" +
		"It is designed to be easily consumable by AI systems for analysis, code review,\n" +
		"or other automated processes."

	noteExclusions      = "Some files may have been excluded based on .gitignore rules and " + utils.ApplicationName + "'s configuration."
	noteBinary          = "Binary files are not included in this packed representation."
	noteEmpty           = "Files that are empty after processing are omitted."
	noteComments        = "Code comments have been removed."
	noteEmptyLines      = "Empty lines have been removed."
	noteLineNumbers     = "Line numbers have been added to the beginning of each line."
	xmlIndentUnit       = "  "
	xmlRootElement      = "repopack"
	xmlSummaryElement   = "summary"
	xmlNotesElement     = "notes"
	xmlNoteElement      = "note"
	xmlHeaderElement    = "user_provided_header"
	xmlTreeElement      = "repository_structure"
	xmlFileElement      = "file"
	xmlPathAttribute    = "path"
	xmlGeneratedAtField = "generated_at"
	xmlRepositoryField  = "repository"
	xmlPurposeField     = "purpose"
	xmlTotalFilesField  = "total_files"
	xmlTotalCharsField  = "total_characters"
)

// RenderContext is everything a renderer needs to compose one document.
type RenderContext struct {
	GeneratedAt time.Time
	Repository  string
	Tree        string
	Files       []types.SanitizedFile
	Options     config.OutputConfiguration
}

// CharacterCount returns the number of Unicode code points in content.
func CharacterCount(content string) int {
	return utf8.RuneCountInString(content)
}

func (context RenderContext) totalCharacters() int {
	total := 0
	for _, file := range context.Files {
		total += CharacterCount(file.Content)
	}
	return total
}

func (context RenderContext) notes() []string {
	notes := []string{noteExclusions, noteBinary, noteEmpty}
	if context.Options.RemoveComments {
		notes = append(notes, noteComments)
	}
	if context.Options.RemoveEmptyLines {
		notes = append(notes, noteEmptyLines)
	}
	if context.Options.ShowLineNumbers {
		notes = append(notes, noteLineNumbers)
	}
	return notes
}

func (context RenderContext) headerText() (string, bool) {
	trimmed := strings.TrimSpace(context.Options.HeaderText)
	return trimmed, trimmed != ""
}

// RenderPlain composes the plain-text document.
func RenderPlain(context RenderContext) string {
	var builder strings.Builder

	writeSectionTitle(&builder, bannerTitle)
	builder.WriteString(generatedAtLabel + utils.FormatTimestamp(context.GeneratedAt) + "\n")
	if context.Repository != "" {
		builder.WriteString(repositoryLabel + context.Repository + "\n")
	}
	builder.WriteString("\n" + purposeTitle + "\n" + titleUnderline + "\n" + purposeText + "\n\n")
	builder.WriteString(notesTitle + "\n" + titleUnderline + "\n")
	for _, note := range context.notes() {
		builder.WriteString("- " + note + "\n")
	}
	builder.WriteString("\n")

	if header, present := context.headerText(); present {
		writeSectionTitle(&builder, headerSectionTitle)
		builder.WriteString(header + "\n\n")
	}

	writeSectionTitle(&builder, summarySectionTitle)
	builder.WriteString(totalFilesLabel + strconv.Itoa(len(context.Files)) + "\n")
	builder.WriteString(totalCharactersLabel + strconv.Itoa(context.totalCharacters()) + "\n\n")

	writeSectionTitle(&builder, treeSectionTitle)
	builder.WriteString(context.Tree + "\n\n")

	writeSectionTitle(&builder, filesSectionTitle)
	builder.WriteString("\n")
	for _, file := range context.Files {
		builder.WriteString(fmt.Sprintf(fileDelimiterFormat, file.Path) + "\n")
		builder.WriteString(file.Content + "\n\n")
	}

	return builder.String()
}

func writeSectionTitle(builder *strings.Builder, title string) {
	builder.WriteString(sectionRule + "\n" + title + "\n" + sectionRule + "\n")
}

// RenderXML composes the XML document. Text is written as character data so that
// decoding the document yields each file's content unchanged, except for characters
// XML 1.0 cannot represent, which become U+FFFD.
func RenderXML(context RenderContext) (string, error) {
	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buffer)
	encoder.Indent("", xmlIndentUnit)
	writer := &xmlTokenWriter{encoder: encoder}

	root := xml.StartElement{Name: xml.Name{Local: xmlRootElement}}
	writer.start(root)

	summary := xml.StartElement{Name: xml.Name{Local: xmlSummaryElement}}
	writer.start(summary)
	writer.textElement(xmlGeneratedAtField, nil, utils.FormatTimestamp(context.GeneratedAt))
	if context.Repository != "" {
		writer.textElement(xmlRepositoryField, nil, context.Repository)
	}
	writer.textElement(xmlPurposeField, nil, purposeText)
	writer.textElement(xmlTotalFilesField, nil, strconv.Itoa(len(context.Files)))
	writer.textElement(xmlTotalCharsField, nil, strconv.Itoa(context.totalCharacters()))
	notes := xml.StartElement{Name: xml.Name{Local: xmlNotesElement}}
	writer.start(notes)
	for _, note := range context.notes() {
		writer.textElement(xmlNoteElement, nil, note)
	}
	writer.end(notes)
	writer.end(summary)

	if header, present := context.headerText(); present {
		writer.textElement(xmlHeaderElement, nil, header)
	}
	writer.textElement(xmlTreeElement, nil, context.Tree)

	for _, file := range context.Files {
		pathAttribute := []xml.Attr{{Name: xml.Name{Local: xmlPathAttribute}, Value: file.Path}}
		writer.textElement(xmlFileElement, pathAttribute, file.Content)
	}

	writer.end(root)
	if writer.err == nil {
		writer.err = encoder.Flush()
	}
	if writer.err != nil {
		return "", writer.err
	}
	buffer.WriteString("\n")
	return buffer.String(), nil
}

// xmlTokenWriter records the first encoding error and ignores later tokens.
type xmlTokenWriter struct {
	encoder *xml.Encoder
	err     error
}

func (writer *xmlTokenWriter) token(token xml.Token) {
	if writer.err != nil {
		return
	}
	writer.err = writer.encoder.EncodeToken(token)
}

func (writer *xmlTokenWriter) start(element xml.StartElement) {
	writer.token(element)
}

func (writer *xmlTokenWriter) end(element xml.StartElement) {
	writer.token(element.End())
}

func (writer *xmlTokenWriter) textElement(name string, attributes []xml.Attr, text string) {
	element := xml.StartElement{Name: xml.Name{Local: name}, Attr: attributes}
	writer.start(element)
	if text != "" {
		writer.token(xml.CharData(text))
	}
	writer.end(element)
}
