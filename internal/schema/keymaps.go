package schema

import "github.com/willie68/GoTikaMeta/internal/filetype"

// base field names
const (
	FieldFormat           = "format"
	FieldType             = "type"
	FieldTitle            = "title"
	FieldCreator          = "creator"
	FieldContributor      = "contributor"
	FieldSubject          = "subject"
	FieldDescription      = "description"
	FieldPublisher        = "publisher"
	FieldRights           = "rights"
	FieldLanguage         = "language"
	FieldResourceCreated  = "resourcecreated"
	FieldResourceModified = "resourcemodified"
)

var managerAliases = []string{
	"Manager", "meta:manager", "meta:Manager", "custom:manager", "custom:Manager",
	"extended-properties:Manager", "extended-properties:manager",
}

var companyAliases = []string{
	"Company", "meta:company", "meta:Company", "custom:Company", "custom:company",
	"extended-properties:Company", "extended-properties:company",
}

var baseKeyMap = KeyMap{
	text(FieldFormat, "dc:format", "Content-Type"),
	text(FieldType, "dc:type"),
	text(FieldTitle, "dc:title", "Title", "title", "meta:title", "resourceName", "pdf:title"),
	text(FieldCreator, "dc:creator", "Creator", "creator", "meta:creator", "Author", "author", "meta:author"),
	text(FieldContributor, "dc:contributor", "meta:last-author"),
	text(FieldSubject, "dc:subject", "Subject", "subject", "meta:subject", "Keywords", "meta:keyword"),
	text(FieldDescription, "dc:description", "Description", "description"),
	text(FieldPublisher, "dc:publisher", "Publisher", "publisher", "meta:publisher"),
	text(FieldRights,
		"dc:rights", "Rights", "rights", "meta:rights",
		"License", "license", "meta:license",
		"custom:Rights", "custom:rights",
		"extended-properties:Rights", "extended-properties:rights",
		"dcterms:rights", "dcterms:license",
		"xmpRights:UsageTerms", "xmpRights:WebStatement", "cp:rights",
	),
	text(FieldLanguage, "dc:language", "Language", "language", "meta:language"),
	text(FieldResourceCreated, "dcterms:created", "dc:date", "Creation-Date", "meta:creation-date", "created"),
	text(FieldResourceModified, "dcterms:modified", "Last-Modified", "Last-Save-Date", "meta:save-date", "modified"),
}

var supplementaryKeyMaps = map[filetype.FileType]KeyMap{
	filetype.Document: {
		integer("pagecount", "Page-Count", "meta:page-count", "xmpTPg:NPages"),
		integer("paragraphcount", "Paragraph-Count", "meta:paragraph-count"),
		integer("linecount", "Line-Count", "meta:line-count"),
		integer("wordcount", "Word-Count", "meta:word-count"),
		integer("charactercount", "Character-Count", "meta:character-count"),
		integer("charactercountwithspaces", "Character-Count-With-Spaces", "meta:character-count-with-spaces"),
		text("manager", managerAliases...),
		text("company", companyAliases...),
	},
	filetype.PDF: {
		integer("pagecount", "xmpTPg:NPages", "Page-Count", "meta:page-count"),
		text("creationtool", "xmp:CreatorTool", "pdf:docinfo:creator_tool", "Creator-Tool", "producer", "pdf:producer", "pdf:docinfo:producer"),
		text("pdfversion", "pdf:PDFVersion", "pdf:version"),
	},
	filetype.Image: {
		integer("height", "tiff:ImageLength", "Image Height", "height"),
		integer("width", "tiff:ImageWidth", "Image Width", "width"),
		integer("bitspersample", "tiff:BitsPerSample", "Data Precision"),
		text("location", "xmpDM:shotLocation", "tiff:GPSAreaInformation"),
	},
	filetype.Audio: {
		text("duration", "xmpDM:duration"),
		integer("samplerate", "xmpDM:audioSampleRate", "samplerate"),
		integer("channels", "channels", "xmpDM:audioChannelType"),
		text("location", "xmpDM:shotLocation"),
	},
	filetype.Video: {
		integer("height", "tiff:ImageLength", "height"),
		integer("width", "tiff:ImageWidth", "width"),
		integer("bitspersample", "tiff:BitsPerSample"),
		text("duration", "xmpDM:duration"),
		integer("samplerate", "xmpDM:audioSampleRate", "samplerate"),
		integer("channels", "channels"),
		text("framesize", "xmpDM:videoFrameSize"),
		text("location", "xmpDM:shotLocation", "tiff:GPSAreaInformation"),
	},
	filetype.Presentation: {
		integer("slidecount", "Slide-Count", "meta:slide-count", "xmpTPg:NPages"),
		integer("paragraphcount", "Paragraph-Count", "meta:paragraph-count"),
		integer("wordcount", "Word-Count", "meta:word-count"),
		text("lastauthor", "Last-Author", "meta:last-author"),
		text("application", "Application-Name", "extended-properties:Application", "generator"),
		text("appversion", "Application-Version", "extended-properties:AppVersion"),
		text("edittime", "Total-Time", "extended-properties:TotalTime", "Edit-Time"),
		integer("revisionnumber", "Revision-Number", "cp:revision", "editing-cycles"),
		integer("notecount", "Notes", "extended-properties:Notes"),
		text("presentationformat", "Presentation-Format", "extended-properties:PresentationFormat"),
		text("manager", managerAliases...),
		text("company", companyAliases...),
	},
	filetype.Spreadsheet: {
		integer("revisionnumber", "Revision-Number", "cp:revision"),
		text("application", "Application-Name", "extended-properties:Application"),
		text("appversion", "Application-Version", "extended-properties:AppVersion"),
		text("lastauthor", "Last-Author", "meta:last-author"),
		text("manager", managerAliases...),
		text("company", companyAliases...),
	},
}

func text(name string, aliases ...string) Field {
	return Field{Name: name, Kind: Text, Aliases: aliases}
}

func integer(name string, aliases ...string) Field {
	return Field{Name: name, Kind: Int, Aliases: aliases}
}
