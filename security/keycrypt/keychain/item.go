// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package keychain

import "github.com/grailbio/genpassword/errors"

// item returns the service and account of the generic password that
// holds the secret name in namespace. The namespace is the service as
// is: "local://genpassword/Password Generator" is service
// "genpassword", account "Password Generator", where earlier versions
// of genpassword kept the key.
func item(namespace, name string) (service, account string, err error) {
	if namespace == "" {
		return "", "", errors.E(errors.Invalid, "keychain secret "+name+" has no namespace")
	}
	return namespace, name, nil
}
