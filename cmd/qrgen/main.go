// Command qrgen renders a QR code pointing at the questionnaire page, so
// participants in the room can join from their phones.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

func main() {
	var (
		target = flag.String("url", "", "questionnaire URL to encode (default: http://<local-ip>:<port>)")
		port   = flag.String("port", "8000", "server port used when deriving the default URL")
		output = flag.String("out", "qr_code.png", "output PNG path")
		size   = flag.Int("size", 512, "image size in pixels")
	)
	flag.Parse()

	link := *target
	if link == "" {
		ip, err := localIP()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to determine local IP: %v\n", err)
			os.Exit(1)
		}
		link = fmt.Sprintf("http://%s:%s", ip, *port)
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		fmt.Fprintf(os.Stderr, "invalid URL %q: must include scheme and host\n", link)
		os.Exit(1)
	}

	if err := qrcode.WriteFile(link, qrcode.Medium, *size, *output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write QR code: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("QR code for %s written to %s\n", link, *output)
}

// localIP finds the outbound interface address without sending any packets.
func localIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}
