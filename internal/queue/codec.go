package queue

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"engage/internal/catalog"
)

// Resolver maps a 4-segment media path to its catalog item.
type Resolver interface {
	Resolve(path string) (*catalog.MediaItem, error)
}

// DecodeReport lists references Decode could not keep.
type DecodeReport struct {
	// Unresolved holds file paths that did not resolve against the catalog.
	Unresolved []string
	// Duplicates names sibling blocks skipped because an earlier block used
	// the same name, as "program", "program/station", or "program/station/group".
	Duplicates []string
}

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	unescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
)

// Encode writes profile in the nested tag format. The root tag is the profile
// name and the output ends at its closing tag with no trailing newline.
func Encode(w io.Writer, profile *Profile) error {
	var b strings.Builder
	root := escaper.Replace(profile.name)
	b.WriteString("<" + root + ">\n")
	for _, program := range profile.programs {
		b.WriteString("<program>\n")
		writeName(&b, program.name)
		for _, station := range program.stations {
			b.WriteString("<station>\n")
			writeName(&b, station.name)
			for _, group := range station.groups {
				b.WriteString("<group>\n")
				writeName(&b, group.name)
				for _, member := range group.members {
					b.WriteString("<file>" + escaper.Replace(member.Path()) + "</file>\n")
				}
				b.WriteString("</group>\n")
			}
			b.WriteString("</station>\n")
		}
		b.WriteString("</program>\n")
	}
	b.WriteString("</" + root + ">")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeName(b *strings.Builder, name string) {
	b.WriteString("<name>" + escaper.Replace(name) + "</name>\n")
}

type decodeState int

const (
	stateStart decodeState = iota
	stateRoot
	stateProgram
	stateStation
	stateGroup
	stateDone
)

type decoder struct {
	profile  *Profile
	resolver Resolver
	report   DecodeReport
	state    decodeState
	root     string
	line     int

	program *ProgramQueue
	station *StationQueue
	group   *GroupQueue
}

// Decode parses a profile named name from r. Blank lines and surrounding
// whitespace are ignored. File references that do not resolve are left out and
// listed in the report; a repeated sibling name keeps the first block. Any
// structural problem, including a missing closing root tag, is ErrProfileParse.
func Decode(r io.Reader, name string, resolver Resolver) (*Profile, DecodeReport, error) {
	d := &decoder{profile: NewProfile(name), resolver: resolver}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := d.consume(line); err != nil {
			return nil, d.report, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, d.report, fmt.Errorf("%w: read: %v", ErrProfileParse, err)
	}
	if d.state != stateDone {
		return nil, d.report, d.fail("unexpected end of file")
	}
	return d.profile, d.report, nil
}

func (d *decoder) fail(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrProfileParse, d.line, fmt.Sprintf(format, args...))
}

func (d *decoder) consume(line string) error {
	switch d.state {
	case stateStart:
		tag, ok := openTag(line)
		if !ok {
			return d.fail("expected root tag, got %q", line)
		}
		d.root = tag
		d.state = stateRoot
	case stateRoot:
		switch line {
		case "<program>":
			d.program = &ProgramQueue{}
			d.state = stateProgram
		case "</" + d.root + ">":
			d.state = stateDone
		default:
			return d.fail("unexpected %q in profile", line)
		}
	case stateProgram:
		if value, ok := nameValue(line); ok {
			return d.setName(&d.program.name, value)
		}
		switch line {
		case "<station>":
			if d.program.name == "" {
				return d.fail("station before program name")
			}
			d.station = &StationQueue{}
			d.state = stateStation
		case "</program>":
			if d.program.name == "" {
				return d.fail("program without name")
			}
			if _, dup := d.profile.Program(d.program.name); dup {
				d.report.Duplicates = append(d.report.Duplicates, d.program.name)
			} else {
				d.profile.programs = append(d.profile.programs, d.program)
			}
			d.program = nil
			d.state = stateRoot
		default:
			return d.fail("unexpected %q in program", line)
		}
	case stateStation:
		if value, ok := nameValue(line); ok {
			return d.setName(&d.station.name, value)
		}
		switch line {
		case "<group>":
			if d.station.name == "" {
				return d.fail("group before station name")
			}
			d.group = &GroupQueue{}
			d.state = stateGroup
		case "</station>":
			if d.station.name == "" {
				return d.fail("station without name")
			}
			if _, dup := d.program.Station(d.station.name); dup {
				d.report.Duplicates = append(d.report.Duplicates, d.program.name+"/"+d.station.name)
			} else {
				d.program.stations = append(d.program.stations, d.station)
			}
			d.station = nil
			d.state = stateProgram
		default:
			return d.fail("unexpected %q in station", line)
		}
	case stateGroup:
		if value, ok := nameValue(line); ok {
			return d.setName(&d.group.name, value)
		}
		if value, ok := elementValue(line, "file"); ok {
			if d.group.name == "" {
				return d.fail("file before group name")
			}
			d.addFile(value)
			return nil
		}
		if line != "</group>" {
			return d.fail("unexpected %q in group", line)
		}
		if d.group.name == "" {
			return d.fail("group without name")
		}
		if _, dup := d.station.Group(d.group.name); dup {
			d.report.Duplicates = append(d.report.Duplicates, d.program.name+"/"+d.station.name+"/"+d.group.name)
		} else {
			d.station.groups = append(d.station.groups, d.group)
		}
		d.group = nil
		d.state = stateStation
	case stateDone:
		return d.fail("content after closing root tag")
	}
	return nil
}

func (d *decoder) setName(dst *string, value string) error {
	if *dst != "" {
		return d.fail("repeated name tag")
	}
	if strings.TrimSpace(value) == "" {
		return d.fail("empty name")
	}
	*dst = value
	return nil
}

func (d *decoder) addFile(path string) {
	if d.resolver == nil {
		d.report.Unresolved = append(d.report.Unresolved, path)
		return
	}
	item, err := d.resolver.Resolve(path)
	if err != nil {
		d.report.Unresolved = append(d.report.Unresolved, path)
		return
	}
	d.group.members = append(d.group.members, item)
}

// openTag matches "<tag>" where tag is not a closing tag.
func openTag(line string) (string, bool) {
	if len(line) < 3 || line[0] != '<' || line[len(line)-1] != '>' || line[1] == '/' {
		return "", false
	}
	inner := line[1 : len(line)-1]
	if strings.ContainsAny(inner, "<>") {
		return "", false
	}
	return inner, true
}

func nameValue(line string) (string, bool) {
	return elementValue(line, "name")
}

// elementValue matches "<tag>value</tag>" on one line and unescapes value.
func elementValue(line, tag string) (string, bool) {
	open, closing := "<"+tag+">", "</"+tag+">"
	if !strings.HasPrefix(line, open) || !strings.HasSuffix(line, closing) || len(line) < len(open)+len(closing) {
		return "", false
	}
	raw := line[len(open) : len(line)-len(closing)]
	if strings.ContainsAny(raw, "<>") {
		return "", false
	}
	return unescaper.Replace(raw), true
}
