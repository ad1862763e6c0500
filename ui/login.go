package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Credentials are a username and password entered at the login prompt.
type Credentials struct {
	Username string
	Password string
}

// LoginPrompt asks for credentials before the terminal UI starts. The
// password is read without echo when in is a terminal.
type LoginPrompt struct {
	out      io.Writer
	reader   *bufio.Reader
	fd       int
	terminal bool
}

// NewLoginPrompt reads answers from in and writes prompts to out.
func NewLoginPrompt(in io.Reader, out io.Writer) *LoginPrompt {
	p := &LoginPrompt{out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd, p.terminal = int(f.Fd()), true
		// term.ReadPassword reads the descriptor itself, so lines must not
		// be buffered past their newline.
		in = byteReader{in}
	}
	p.reader = bufio.NewReader(in)
	return p
}

// Ask prompts for the password, and for the username unless one is given.
func (p *LoginPrompt) Ask(username string) (Credentials, error) {
	if username == "" {
		fmt.Fprint(p.out, "Username: ")
		line, err := p.readLine()
		if err != nil {
			return Credentials{}, errors.Wrap(err, "read username")
		}
		username = line
	}

	fmt.Fprint(p.out, "Password: ")
	password, err := p.readPassword()
	if err != nil {
		return Credentials{}, errors.Wrap(err, "read password")
	}
	return Credentials{Username: username, Password: password}, nil
}

func (p *LoginPrompt) readPassword() (string, error) {
	if p.terminal {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		return string(b), err
	}
	return p.readLine()
}

func (p *LoginPrompt) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// byteReader hands out at most one byte per Read.
type byteReader struct {
	r io.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return b.r.Read(p)
}
