/*
Package go-rest-boot is a batteries-included framework for building annotation-driven REST APIs in Go.

Official Repository: https://github.com/SaiNageswarS/go-rest-boot

go-rest-boot provides a comprehensive solution for building declarative HTTP services with:
- Annotation-driven routing, declared programmatically or scanned from //rest: comments
- Layered JWT authorization: public endpoints, bare-token endpoints and pluggable validators
- AND/OR validator combination with structured 403 failure details
- Declarative parameter injection from path, query, header, body and context
- In-memory token blacklist for logout and revocation flows
- Zero-config SSL/TLS with automatic Let's Encrypt certificates
- CLI for printing route tables and generating ahead-of-time annotation declarations

Quick Start:

	go install github.com/SaiNageswarS/go-rest-boot/cmd/go-rest-boot@latest
	go-rest-boot routes ./controllers

Package Import:

	import "github.com/SaiNageswarS/go-rest-boot/server"
	import "github.com/SaiNageswarS/go-rest-boot/rest"
	import "github.com/SaiNageswarS/go-rest-boot/annotation"
	import "github.com/SaiNageswarS/go-rest-boot/auth"

Examples and documentation: https://github.com/SaiNageswarS/go-rest-boot

License: Apache-2.0
*/
package boot
