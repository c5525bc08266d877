package eas

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "eas")
