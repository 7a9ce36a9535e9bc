// Package envfile resolves deployment settings from the provisioning state
// directory: it follows the default-environment pointer in .azure/config.json
// and reads the line-oriented .azure/<environment>/.env settings file.
//
// Values already present in the process environment always win over values
// read from the file, so an operator can override any loaded value by setting
// it before invocation.
package envfile
